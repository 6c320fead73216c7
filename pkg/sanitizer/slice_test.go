package sanitizer

import (
	"reflect"
	"testing"
)

func TestSanitizeSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "drops empties and duplicates",
			input: []string{" Projector ", "projector", "", "Whiteboard"},
			want:  []string{"Projector", "Whiteboard"},
		},
		{
			name:  "keeps first casing",
			input: []string{"Smart Board", "SMART  BOARD"},
			want:  []string{"Smart Board"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
		{
			name:  "whitespace only entries dropped",
			input: []string{"  ", "\t"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeSlice(tt.input, NormalizeEquipmentLabel)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeSlice(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
