package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// layoutNameRegex matches layout names accepted by stores and the HTTP API.
var layoutNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateLayoutName validates a layout name for safety and correctness.
// Layout names double as file basenames in the file store, so anything that
// could escape the store directory is rejected:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "layout name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "layout name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "layout name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "layout name contains invalid characters: %q", pattern)
		}
	}

	if !layoutNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid layout name: %q", name)
	}

	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateResolution checks that a resolution (physical units per pixel) is
// a finite, strictly positive number.
func ValidateResolution(resolution float64) error {
	if math.IsNaN(resolution) || math.IsInf(resolution, 0) || resolution <= 0 {
		return New(ErrCodeInvalidInput, "resolution must be a positive number, got %g", resolution)
	}
	return nil
}

// ValidatePadding checks that a padding (physical units) is finite and not negative.
func ValidatePadding(padding float64) error {
	if math.IsNaN(padding) || math.IsInf(padding, 0) || padding < 0 {
		return New(ErrCodeInvalidInput, "padding must be zero or positive, got %g", padding)
	}
	return nil
}
