// Package phone normalizes guest and supplier phone numbers to E.164.
package phone

import (
	"regexp"
	"strings"
)

var e164 = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// Normalize strips formatting characters and rewrites an international
// "00" prefix to "+". It does not guess country codes.
func Normalize(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	return s
}

// Valid reports whether s is already a normalized E.164 number.
func Valid(s string) bool {
	return e164.MatchString(s)
}

// Parse normalizes raw and reports whether the result is E.164.
func Parse(raw string) (string, bool) {
	s := Normalize(raw)
	return s, Valid(s)
}
