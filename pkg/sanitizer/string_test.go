package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Advanced Algorithms", "Advanced Algorithms"},
		{"leading and trailing spaces", "  Research Seminar  ", "Research Seminar"},
		{"internal runs collapse", "Lecture   Hall    A", "Lecture Hall A"},
		{"tabs and newlines", "Main\tBuilding\nWest", "Main Building West"},
		{"empty", "", ""},
		{"only whitespace", "   \t\n ", ""},
		{"unicode preserved", "Café  Séminaire", "Café Séminaire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPipeline(t *testing.T) {
	upper := func(s string) string { return s + "!" }
	p := Pipeline{TrimAndNormalize, upper}
	if got := p.Apply("  hello   world "); got != "hello world!" {
		t.Errorf("Pipeline.Apply = %q, want %q", got, "hello world!")
	}
}
