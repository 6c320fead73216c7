// Package sanitizer normalizes free-text input before validation and
// persistence: titles, building and venue names, equipment lists.
package sanitizer

// Strategy transforms a single string value.
type Strategy func(string) string

// Pipeline applies strategies in order.
type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}
