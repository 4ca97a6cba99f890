package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Main Gymnasium  ",
			want:  "Main Gymnasium",
		},
		{
			name:  "multiple spaces between words",
			input: "Main    Gymnasium",
			want:  "Main Gymnasium",
		},
		{
			name:  "tabs and newlines",
			input: "Main\t\nGymnasium",
			want:  "Main Gymnasium",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Lounge™ ",
			want:  "Café & Lounge™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	if got := NormalizeLocation("  North Campus,   Building B "); got != "North Campus, Building B" {
		t.Errorf("NormalizeLocation = %q", got)
	}
}

func TestTrimAndNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  a  b  ", "already normal", "", " \t "}
	for _, in := range inputs {
		once := TrimAndNormalize(in)
		twice := TrimAndNormalize(once)
		if once != twice {
			t.Errorf("TrimAndNormalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
