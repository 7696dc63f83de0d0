package auth

import "unicode"

// MinPasswordLength is the minimum accepted password length at signup
// and on password changes.
const MinPasswordLength = 8

// StrongPassword reports whether the password meets the strength policy:
// at least MinPasswordLength characters with an uppercase letter, a
// lowercase letter, and a digit.
func StrongPassword(password string) bool {
	if len(password) < MinPasswordLength || len(password) > longestPassword {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
