package contact

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmissionJSON(t *testing.T) {
	body := `{"firstName":"Jane","lastName":"Murphy","email":"jane@acme.com","size":"51-200","website":""}`
	r := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	sub, err := ParseSubmission(r)
	require.NoError(t, err)
	assert.Equal(t, "Jane", sub.FirstName)
	assert.Equal(t, "Murphy", sub.LastName)
	assert.Equal(t, "jane@acme.com", sub.Email)
	assert.Equal(t, "51-200", sub.TeamSize)
	assert.False(t, sub.IsBot())
}

func TestParseSubmissionJSONNonStringFieldsReadEmpty(t *testing.T) {
	body := `{"firstName":"Jane","lastName":"Murphy","email":"jane@acme.com","company":42}`
	r := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	sub, err := ParseSubmission(r)
	require.NoError(t, err)
	assert.Empty(t, sub.Company)
}

func TestParseSubmissionForm(t *testing.T) {
	form := url.Values{}
	form.Set("firstName", "Jane")
	form.Set("lastName", "Murphy")
	form.Set("email", "jane@acme.com")
	form.Set("packages", "100-500")
	r := httptest.NewRequest("POST", "/api/contact", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	sub, err := ParseSubmission(r)
	require.NoError(t, err)
	assert.Equal(t, "Jane", sub.FirstName)
	assert.Equal(t, "100-500", sub.Packages)
}

func TestParseSubmissionRejectsEmptyBodies(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		contentType string
	}{
		{"empty json", "", "application/json"},
		{"null json", "null", "application/json"},
		{"empty object", "{}", "application/json"},
		{"invalid json", "{not json", "application/json"},
		{"empty form", "", "application/x-www-form-urlencoded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/contact", strings.NewReader(tc.body))
			r.Header.Set("Content-Type", tc.contentType)
			_, err := ParseSubmission(r)
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestValidateRequiresNames(t *testing.T) {
	blocked := BlockedDomainSet(nil)

	err := (&Submission{LastName: "Murphy", Email: "jane@acme.com"}).Validate(blocked)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "First and last name")

	err = (&Submission{FirstName: "Jane", Email: "jane@acme.com"}).Validate(blocked)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "First and last name")
}

func TestValidateEmailGrammar(t *testing.T) {
	blocked := BlockedDomainSet(nil)
	base := Submission{FirstName: "Jane", LastName: "Murphy"}

	for _, bad := range []string{"", "not-an-email", "jane@", "@acme.com", "jane@localhost", "Jane Murphy <jane@acme.com>"} {
		s := base
		s.Email = bad
		err := s.Validate(blocked)
		require.Error(t, err, "email %q", bad)
		assert.Contains(t, err.Error(), "valid email")
	}

	s := base
	s.Email = "jane@acme.com"
	assert.NoError(t, s.Validate(blocked))
}

func TestValidateBlocksConsumerDomains(t *testing.T) {
	blocked := BlockedDomainSet([]string{"gmail.com", "yahoo.com"})
	base := Submission{FirstName: "Jane", LastName: "Murphy"}

	for _, email := range []string{"jane@gmail.com", "jane@GMAIL.COM", "jane@Yahoo.Com"} {
		s := base
		s.Email = email
		err := s.Validate(blocked)
		require.Error(t, err, "email %q", email)
		assert.Contains(t, err.Error(), "work email")
	}

	s := base
	s.Email = "jane@acme.com"
	assert.NoError(t, s.Validate(blocked))
}

func TestIsBot(t *testing.T) {
	assert.True(t, (&Submission{Website: "http://spam.example"}).IsBot())
	assert.False(t, (&Submission{}).IsBot())
}
