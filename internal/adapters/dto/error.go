package dto

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrorResponse represents a common API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

var strictPolicy = bluemonday.StrictPolicy()

// maxUnescape bounds how many layers of entity encoding are peeled off.
const maxUnescape = 8

// SanitizeMessage strips markup from a message that may echo user input.
// Entities are decoded before sanitizing so encoded tags cannot come back to
// life; the policy's own escaping of the remaining text is then undone once.
func SanitizeMessage(msg string) string {
	for i := 0; i < maxUnescape; i++ {
		decoded := html.UnescapeString(msg)
		if decoded == msg {
			break
		}
		msg = decoded
	}
	clean := html.UnescapeString(strictPolicy.Sanitize(msg))
	// a stray "<" the tokenizer kept as text must not pair up into a tag
	clean = strings.NewReplacer("<", "", ">", "").Replace(clean)
	return strings.TrimSpace(clean)
}

// NewErrorResponse builds a sanitized error response.
func NewErrorResponse(field, msg string) ErrorResponse {
	return ErrorResponse{Error: SanitizeMessage(msg), Field: field}
}
