package logger

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// redactField masks submitter PII in a log field. Fields named after the
// contact form's identity inputs are masked outright; any other string
// field has embedded email addresses masked.
func redactField(key string, val interface{}) interface{} {
	s, ok := val.(string)
	if !ok {
		return val
	}
	k := strings.ToLower(key)
	if strings.Contains(k, "email") || strings.Contains(k, "reply_to") {
		return RedactEmail(s)
	}
	return emailRegex.ReplaceAllStringFunc(s, RedactEmail)
}

// RedactEmail masks an email address for safe logging.
// "jane.murphy@acme.com" → "ja***@acme.com"
// Short local parts (≤2 chars) are fully masked: "ab@acme.com" → "***@acme.com"
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}
