// Package validation holds the field shape and strength checks used by the
// sign-up and sign-in forms. All checks are pure.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// PasswordSpecialChars is the set of characters that satisfy the
// "one special character" rule.
const PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required reports whether s holds anything besides whitespace.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Email reports whether s looks like local@domain.tld. It is a shape check
// only: no RFC parsing, no domain lookup.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s is a non-empty run of ASCII digits.
func Phone(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// Password reports whether s has at least MinPasswordLength characters, at
// least one character from PasswordSpecialChars and at least one digit.
func Password(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	return strings.ContainsAny(s, PasswordSpecialChars) && strings.IndexFunc(s, isDigitRune) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}
