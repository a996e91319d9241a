package gcauth

import (
	"testing"
)

func TestCoalesceString(t *testing.T) {
	var tests = []struct {
		name  string
		input []string
		want  string
	}{
		{
			name:  "first non-empty",
			input: []string{"a", "b"},
			want:  "a",
		},
		{
			name:  "skip empty",
			input: []string{"", "b"},
			want:  "b",
		},
		{
			name:  "all empty",
			input: []string{"", ""},
			want:  "",
		},
		{
			name:  "no strings",
			input: nil,
			want:  "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := coalesceString(test.input...)

			if test.want != got {
				t.Errorf("coalesceString() = unexpected result, want: %s, got: %s\n", test.want, got)
			}
		})
	}
}
