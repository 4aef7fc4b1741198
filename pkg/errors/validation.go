package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// gaugeNameRegex matches names usable in URLs, cache keys and feed messages.
var gaugeNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateGaugeName validates the name of a live gauge.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (..)
//   - Maximum length of 128 characters
//   - Letters, digits, '.', '_' and '-' only, starting with a letter or digit
func ValidateGaugeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "gauge name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "gauge name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "gauge name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "gauge name cannot contain path traversal sequences (..)")
	}

	if !gaugeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid gauge name: %q", name)
	}

	return nil
}

// ValidatePath validates a configuration file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
