package grading

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultDelimiter separates accepted-answer variants in the question source.
const DefaultDelimiter = "или"

// Matcher compares free-text submissions against accepted answer strings.
// An accepted string may list several variants separated by Delimiter;
// a submission matching any variant is correct.
type Matcher struct {
	Delimiter string
}

func NewMatcher(delimiter string) Matcher {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return Matcher{Delimiter: delimiter}
}

// Matches reports whether submitted is an acceptable answer.
// Comparison is case-insensitive and whitespace-insensitive; numeric
// answers tolerate an absolute difference of 0.01 and accept a comma
// as the decimal separator.
func (m Matcher) Matches(submitted, accepted string) bool {
	submitted = strings.TrimSpace(submitted)
	subNorm := normalize(submitted)
	subNum, subIsNum := toNumber(submitted)

	for _, variant := range strings.Split(strings.TrimSpace(accepted), m.Delimiter) {
		variant = strings.TrimSpace(variant)

		if subNorm == normalize(variant) {
			return true
		}

		if subIsNum {
			if num, ok := toNumber(variant); ok && math.Abs(subNum-num) <= 0.01 {
				return true
			}
		}

		// Legacy rule: an all-digit submission occurring anywhere inside the
		// variant counts as a match ("1" matches "10"). Existing question
		// files rely on it.
		if submitted != "" && isDigits(submitted) && strings.Contains(variant, submitted) {
			return true
		}
	}
	return false
}

// normalize trims, lower-cases and removes all whitespace.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// toNumber parses a decimal, accepting a comma as the separator.
func toNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
