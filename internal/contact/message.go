package contact

import (
	"fmt"
	"os"
	"time"

	"github.com/osteele/liquid"

	"github.com/oxmics/metics-site/internal/config"
	"github.com/oxmics/metics-site/internal/mailer"
)

const defaultSubjectTemplate = `Metics Demo Request from {{ first_name }} {{ last_name }}`

const defaultBodyTemplate = `New demo request received from the Metics website.

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

Name:       {{ first_name }} {{ last_name }}
Email:      {{ email }}
Company:    {{ company | default: "Not provided" }}
Role:       {{ role | default: "Not provided" }}
Team Size:  {{ team_size | default: "Not provided" }}
Packages:   {{ packages | default: "Not provided" }}

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

Message:
{{ message }}

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

Submitted: {{ submitted_at }}
IP: {{ client_ip }}
`

// Composer renders the notification email for a validated submission.
// Subject and body are Liquid templates with embedded defaults, so the
// sales team can adjust notification copy without a rebuild.
type Composer struct {
	from     string
	fromName string
	to       string
	subject  *liquid.Template
	body     *liquid.Template
}

// NewComposer builds a composer from mail and contact configuration,
// parsing any template overrides up front so bad templates fail at
// startup rather than on the first submission.
func NewComposer(mailCfg config.MailConfig, contactCfg config.ContactConfig) (*Composer, error) {
	engine := liquid.NewEngine()

	subjectSrc := contactCfg.SubjectTemplate
	if subjectSrc == "" {
		subjectSrc = defaultSubjectTemplate
	}
	subject, err := engine.ParseTemplate([]byte(subjectSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing subject template: %w", err)
	}

	bodySrc := defaultBodyTemplate
	if contactCfg.BodyTemplateFile != "" {
		raw, err := os.ReadFile(contactCfg.BodyTemplateFile)
		if err != nil {
			return nil, fmt.Errorf("reading body template: %w", err)
		}
		bodySrc = string(raw)
	}
	body, err := engine.ParseTemplate([]byte(bodySrc))
	if err != nil {
		return nil, fmt.Errorf("parsing body template: %w", err)
	}

	return &Composer{
		from:     mailCfg.From,
		fromName: mailCfg.FromName,
		to:       mailCfg.To,
		subject:  subject,
		body:     body,
	}, nil
}

// Compose builds the outbound notification from a sanitized, validated
// submission. The result is deterministic for a given submission,
// timestamp, and client address.
func (c *Composer) Compose(s *Submission, submittedAt time.Time, clientIP string) (*mailer.Message, error) {
	bindings := map[string]interface{}{
		"first_name":   s.FirstName,
		"last_name":    s.LastName,
		"email":        s.Email,
		"company":      s.Company,
		"role":         s.Role,
		"team_size":    s.TeamSize,
		"packages":     s.Packages,
		"message":      s.Message,
		"submitted_at": submittedAt.Format("2006-01-02 15:04:05 MST"),
		"client_ip":    clientIP,
	}

	subject, err := c.subject.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering subject: %w", err)
	}
	body, err := c.body.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering body: %w", err)
	}

	return &mailer.Message{
		To:          c.to,
		From:        c.from,
		FromName:    c.fromName,
		ReplyTo:     s.Email,
		ReplyToName: s.FirstName + " " + s.LastName,
		Subject:     subject,
		Body:        body,
	}, nil
}
