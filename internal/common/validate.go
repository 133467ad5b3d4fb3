package common

import (
	"net/mail"
	"strings"
)

// NormalizeEmail lowercases and trims s and reports whether the result is a
// bare email address ("ann@example.com", not "Ann <ann@example.com>").
func NormalizeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@"):], ".") {
		return s, false
	}
	return s, true
}
