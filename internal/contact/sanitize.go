package contact

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag and escapes HTML-special characters in
// what remains. A real tokenizer handles malformed markup that a regex
// would let through.
var strictPolicy = bluemonday.StrictPolicy()

// sanitizeField trims a free-text field, removes markup, and escapes
// HTML-special characters. The result is a fixed point: sanitizing
// already-sanitized text returns it unchanged, so there is no
// double-escaping drift.
func sanitizeField(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(strings.TrimSpace(s)))
}

// Sanitize cleans every free-text field in place. The email field is
// only trimmed; escaping would corrupt an address before validation,
// and an address that needs escaping fails validation anyway.
func (s *Submission) Sanitize() {
	s.FirstName = sanitizeField(s.FirstName)
	s.LastName = sanitizeField(s.LastName)
	s.Email = strings.TrimSpace(s.Email)
	s.Company = sanitizeField(s.Company)
	s.Role = sanitizeField(s.Role)
	s.TeamSize = sanitizeField(s.TeamSize)
	s.Packages = sanitizeField(s.Packages)
	s.Message = sanitizeField(s.Message)
	s.Website = sanitizeField(s.Website)
}
