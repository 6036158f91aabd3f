package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Toyota Camry", "Toyota Camry"},
		{"leading and trailing spaces", "  BMW X5  ", "BMW X5"},
		{"collapses inner whitespace", "Mercedes \t  C-Class", "Mercedes C-Class"},
		{"newlines collapse", "Spacious\n\nSUV", "Spacious SUV"},
		{"strips control characters", "Audi\x00 A4\x1b", "Audi A4"},
		{"strips zero-width characters", "Hon\u200bda", "Honda"},
		{"only whitespace", " \t\n ", ""},
		{"unicode preserved", "Škoda Octavia", "Škoda Octavia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	inputs := []string{"  Toyota   Camry ", "plain", "", "a\u200bb c"}
	for _, in := range inputs {
		once := TrimAndNormalize(in)
		twice := TrimAndNormalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"New York", "new york"},
		{"  LOS  ANGELES ", "los angeles"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeLocation(tt.input)
		if got != tt.expected {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
