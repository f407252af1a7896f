package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateBudget checks that a kilobyte ceiling is a finite positive number.
func ValidateBudget(kb float64) error {
	if math.IsNaN(kb) || math.IsInf(kb, 0) {
		return New(ErrCodeInvalidBudget, "budget must be a finite number of kilobytes")
	}
	if kb <= 0 {
		return New(ErrCodeInvalidBudget, "budget must be positive, got %g KB", kb)
	}
	return nil
}

// ValidateID validates an identifier used for layers and definitions.
// Identifiers end up inside url(#id) references, so they may not contain
// whitespace, quotes, parentheses or control characters.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `"'()#<>&`) {
		return New(ErrCodeInvalidInput, "id %q contains reserved characters", id)
	}
	return nil
}

// ValidatePath validates an output file path supplied by a user.
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
