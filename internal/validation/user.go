// Package validation provides field validation for user registration and
// list queries.
package validation

import (
	"regexp"
	"time"

	"golang.org/x/text/cases"
)

// DateLayout is the only accepted date-of-birth format.
const DateLayout = "2006-01-02"

// Accepted gender values, compared after case folding.
var validGenders = []string{"male", "female", "other"}

var dobPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidUsername reports whether s is non-empty and made only of ASCII
// letters, digits and underscores.
func IsValidUsername(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

// ParseDateOfBirth parses a YYYY-MM-DD string into a date at midnight in
// loc. It rejects dates that do not exist on the calendar.
func ParseDateOfBirth(s string, loc *time.Location) (time.Time, bool) {
	if !dobPattern.MatchString(s) {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsValidDateOfBirth reports whether s is a real calendar date strictly
// before the calendar day of now. Today itself is rejected.
func IsValidDateOfBirth(s string, now time.Time) bool {
	d, ok := ParseDateOfBirth(s, now.Location())
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(today)
}

// NormalizeGender folds g for comparison. The folded value is never stored.
func NormalizeGender(g string) string {
	return cases.Fold().String(g)
}

// IsValidGender reports whether g is male, female or other in any casing.
func IsValidGender(g string) bool {
	if g == "" {
		return false
	}
	folded := NormalizeGender(g)
	for _, v := range validGenders {
		if folded == v {
			return true
		}
	}
	return false
}

// GenderEquals compares two gender values case-insensitively.
func GenderEquals(a, b string) bool {
	return NormalizeGender(a) == NormalizeGender(b)
}
