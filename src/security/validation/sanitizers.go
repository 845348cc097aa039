// backend/src/security/validation/sanitizers.go
package validation

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy = bluemonday.StrictPolicy()

// SanitizeText removes all HTML tags and attributes from an input string.
func SanitizeText(s string) string {
	return strictHTMLPolicy.Sanitize(s)
}

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// CleanText is applied to every free-text field before it is stored.
func CleanText(s string) string {
	return strings.TrimSpace(StripUnprintable(SanitizeText(s)))
}

// CleanTextPtr is CleanText for partial updates; nil stays nil.
func CleanTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := CleanText(*s)
	return &cleaned
}
