package grading

import "testing"

func TestMatchesTextVariants(t *testing.T) {
	m := NewMatcher("")

	tests := []struct {
		name      string
		submitted string
		accepted  string
		want      bool
	}{
		{"exact", "Paris", "Paris", true},
		{"case insensitive", "paris", "Paris", true},
		{"inner whitespace ignored", "P a r i s", "paris", true},
		{"surrounding whitespace ignored", "  paris  ", "paris", true},
		{"wrong text", "london", "paris", false},
		{"second variant", "Лондон", "Париж или Лондон", true},
		{"first variant", "Париж", "Париж или Лондон", true},
		{"no variant matches", "Берлин", "Париж или Лондон", false},
		{"empty submission", "", "paris", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Matches(tc.submitted, tc.accepted); got != tc.want {
				t.Fatalf("Matches(%q, %q) = %v, want %v", tc.submitted, tc.accepted, got, tc.want)
			}
		})
	}
}

func TestMatchesNumericTolerance(t *testing.T) {
	m := NewMatcher("")

	tests := []struct {
		submitted string
		accepted  string
		want      bool
	}{
		{"3.0", "3,00", true},
		{"3,14", "3.14", true},
		{"3.141", "3.15", true}, // |diff| = 0.009
		{"3.1", "3.15", false},  // |diff| = 0.05
		{"42", "42.0", true},
		{"-1,5", "-1.5", true},
		{"abc", "3.14", false},
	}
	for _, tc := range tests {
		if got := m.Matches(tc.submitted, tc.accepted); got != tc.want {
			t.Fatalf("Matches(%q, %q) = %v, want %v", tc.submitted, tc.accepted, got, tc.want)
		}
	}
}

// The digit-substring rule is intentionally preserved from the original
// checker: an all-digit submission found anywhere inside a variant matches.
func TestMatchesDigitSubstringRule(t *testing.T) {
	m := NewMatcher("")

	if !m.Matches("1", "10") {
		t.Fatalf("expected digit substring to match")
	}
	if !m.Matches("2", "21 метр") {
		t.Fatalf("expected digit substring inside text to match")
	}
	if m.Matches("3", "21") {
		t.Fatalf("expected non-substring digit to be rejected")
	}
}

func TestMatchesCustomDelimiter(t *testing.T) {
	m := NewMatcher("|")

	if !m.Matches("blue", "red | blue | green") {
		t.Fatalf("expected variant split on custom delimiter")
	}
	if m.Matches("или", "red | blue") {
		t.Fatalf("default delimiter must not apply when overridden")
	}
}
