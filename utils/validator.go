// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,}$`)

// ValidateUsername checks the username pattern: at least 3 characters,
// letters, digits, dot, underscore or dash.
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
