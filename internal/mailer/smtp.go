package mailer

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	appconfig "github.com/oxmics/metics-site/internal/config"
)

// SMTPTransport sends notifications through an SMTP relay, for hosts
// without SES access (the contact form's original deployment shape).
type SMTPTransport struct {
	client *gomail.Client
}

// NewSMTPTransport creates an SMTP transport from relay configuration.
func NewSMTPTransport(cfg appconfig.SMTPConfig) (*SMTPTransport, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host not configured")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
	}

	switch cfg.Encryption {
	case "tls":
		opts = append(opts, gomail.WithSSL())
	case "none":
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default: // starttls
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPTransport{client: client}, nil
}

// Send delivers a single notification through the relay.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.From); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyToFormat(msg.ReplyToName, msg.ReplyTo); err != nil {
			return fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := t.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
