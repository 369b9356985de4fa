package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxMessageLength is the longest message text accepted, in runes.
const MaxMessageLength = 280

// ValidateMessageText validates the text of a greeting message.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only text
//   - No control characters other than newline
//   - Valid UTF-8
//   - Maximum length of MaxMessageLength runes
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidMessage, "message text cannot be empty")
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidMessage, "message text is not valid UTF-8")
	}

	if n := utf8.RuneCountInString(text); n > MaxMessageLength {
		return New(ErrCodeInvalidMessage, "message text too long (%d runes, max %d)", n, MaxMessageLength)
	}

	for _, r := range text {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidMessage, "message text contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local file path given on the command line or in
// configuration (silhouette files, sqlite databases).
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
