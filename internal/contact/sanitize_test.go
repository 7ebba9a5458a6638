package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFieldStripsMarkup(t *testing.T) {
	cases := map[string]string{
		"  Jane  ":                      "Jane",
		"<b>Jane</b>":                   "Jane",
		"<script>alert(1)</script>Jane": "Jane",
		"Jane<img src=x onerror=pwn>":   "Jane",
		"":                              "",
		"   ":                           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeField(in), "input %q", in)
	}
}

func TestSanitizeFieldEscapesSpecialCharacters(t *testing.T) {
	out := sanitizeField(`O'Brien & Sons <Construction>`)
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.Contains(t, out, "O")
	assert.Contains(t, out, "Sons")
}

func TestSanitizeFieldIsIdempotent(t *testing.T) {
	inputs := []string{
		"Jane",
		`O'Brien & Sons`,
		"1 < 2 && 3 > 2",
		`say "hello"`,
		"<p>markup</p> and text",
		"plain text with spaces",
	}
	for _, in := range inputs {
		once := sanitizeField(in)
		twice := sanitizeField(once)
		assert.Equal(t, once, twice, "double sanitize drifted for %q", in)
	}
}

func TestSubmissionSanitizeCleansAllTextFields(t *testing.T) {
	s := &Submission{
		FirstName: " <b>Jane</b> ",
		LastName:  "Murphy<script></script>",
		Email:     "  jane@acme.com  ",
		Company:   "<i>Acme</i>",
		Message:   "  Need a demo  ",
	}
	s.Sanitize()

	assert.Equal(t, "Jane", s.FirstName)
	assert.Equal(t, "Murphy", s.LastName)
	assert.Equal(t, "jane@acme.com", s.Email)
	assert.Equal(t, "Acme", s.Company)
	assert.Equal(t, "Need a demo", s.Message)
}

func TestSanitizeTagsOnlyNameBecomesEmpty(t *testing.T) {
	s := &Submission{FirstName: "<b></b>", LastName: "Murphy", Email: "jane@acme.com"}
	s.Sanitize()
	assert.Empty(t, s.FirstName)
}
