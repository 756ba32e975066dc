package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a preference or operation name used as a file stem.
// It rejects names that could escape the preference directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "name contains invalid characters: %q", pattern)
		}
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid name: %q", name)
	}

	return nil
}

// nameRegex matches names built from letters, digits, dash, underscore and dot.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateFinite rejects NaN and infinite values.
// what names the value in the error message (e.g., "width").
func ValidateFinite(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number, got %v", what, v)
	}
	return nil
}

// ValidatePositive rejects values that are not strictly positive and finite.
func ValidatePositive(what string, v float64) error {
	if err := ValidateFinite(what, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %v", what, v)
	}
	return nil
}

// ValidateRange rejects values outside [lo, hi].
func ValidateRange(what string, v, lo, hi float64) error {
	if err := ValidateFinite(what, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidInput, "%s must be between %v and %v, got %v", what, lo, hi, v)
	}
	return nil
}
