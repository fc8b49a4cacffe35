package utils

import "regexp"

// Matches local@domain.tld without whitespace; the store layer trusts the
// handler to have run this before any write.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
