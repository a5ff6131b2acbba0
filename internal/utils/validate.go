package utils

import "regexp"

var (
	rucRegex   = regexp.MustCompile(`^\d{11}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidRUC reports whether s is an 11-digit tax identifier.
func ValidRUC(s string) bool {
	return rucRegex.MatchString(s)
}

// ValidEmail applies the same basic shape check the intake forms use.
// Empty is allowed; email is an optional contact field.
func ValidEmail(s string) bool {
	if s == "" {
		return true
	}
	return emailRegex.MatchString(s)
}
