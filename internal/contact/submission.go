// Package contact implements the submission gateway for the Metics
// marketing site: it turns an untrusted contact-form POST into either a
// delivered notification email or a well-defined rejection.
package contact

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/mail"
	"strings"
)

// ErrNoData marks an empty or unparseable request body.
var ErrNoData = errors.New("no data received")

// Submission holds one contact-form request. It lives for the duration
// of a single request and is never persisted.
type Submission struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Role      string
	TeamSize  string
	Packages  string
	Message   string

	// Website is the honeypot field: hidden from humans, filled by
	// naive bots. Any non-empty value marks the submission automated.
	Website string
}

// ParseSubmission decodes the request body. JSON bodies are accepted
// when the Content-Type says so; anything else is read as URL-encoded
// form fields. Missing fields are fine, an empty body is not.
func ParseSubmission(r *http.Request) (*Submission, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return parseJSON(r.Body)
	}
	return parseForm(r)
}

func parseJSON(body io.Reader) (*Submission, error) {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, ErrNoData
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return nil, ErrNoData
	}

	str := func(key string) string {
		if v, ok := fields[key].(string); ok {
			return v
		}
		return ""
	}

	return &Submission{
		FirstName: str("firstName"),
		LastName:  str("lastName"),
		Email:     str("email"),
		Company:   str("company"),
		Role:      str("role"),
		TeamSize:  str("size"),
		Packages:  str("packages"),
		Message:   str("message"),
		Website:   str("website"),
	}, nil
}

func parseForm(r *http.Request) (*Submission, error) {
	if err := r.ParseForm(); err != nil || len(r.PostForm) == 0 {
		return nil, ErrNoData
	}

	return &Submission{
		FirstName: r.PostForm.Get("firstName"),
		LastName:  r.PostForm.Get("lastName"),
		Email:     r.PostForm.Get("email"),
		Company:   r.PostForm.Get("company"),
		Role:      r.PostForm.Get("role"),
		TeamSize:  r.PostForm.Get("size"),
		Packages:  r.PostForm.Get("packages"),
		Message:   r.PostForm.Get("message"),
		Website:   r.PostForm.Get("website"),
	}, nil
}

// IsBot reports whether the honeypot tripped.
func (s *Submission) IsBot() bool {
	return s.Website != ""
}

// ValidationError is a client-correctable input failure. Its message is
// safe to return verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks required fields, email grammar, and the consumer
// domain block-list. Call after Sanitize.
func (s *Submission) Validate(blockedDomains map[string]struct{}) error {
	if s.FirstName == "" || s.LastName == "" {
		return &ValidationError{Msg: "First and last name are required."}
	}
	if !validEmail(s.Email) {
		return &ValidationError{Msg: "A valid email address is required."}
	}
	if _, blocked := blockedDomains[emailDomain(s.Email)]; blocked {
		return &ValidationError{Msg: "Please use your work email address."}
	}
	return nil
}

// validEmail accepts a bare address with a dotted domain. Display-name
// forms like "Jane <jane@acme.com>" are rejected: the form submits a
// plain address or nothing.
func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	return strings.Contains(emailDomain(email), ".")
}

// emailDomain returns the lowercased domain part of an address.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// BlockedDomainSet builds the lookup set used by Validate.
func BlockedDomainSet(domains []string) map[string]struct{} {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return set
}
