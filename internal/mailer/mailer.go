// Package mailer delivers contact-form notifications. The gateway only
// depends on the Transport contract; the concrete carrier (SES, an SMTP
// relay, or the log for development) is chosen by configuration.
package mailer

import (
	"context"
	"fmt"

	"github.com/oxmics/metics-site/internal/config"
)

// Message is a fully composed notification, ready to hand to a transport.
type Message struct {
	To          string
	From        string
	FromName    string
	ReplyTo     string
	ReplyToName string
	Subject     string
	Body        string
}

// Transport sends a single message and reports success or failure.
// Implementations must honor ctx cancellation so a hung carrier cannot
// stall the request handler.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

// New builds the transport selected by cfg.Provider.
func New(cfg config.MailConfig) (Transport, error) {
	switch cfg.Provider {
	case "ses":
		return NewSESTransport(cfg.SES)
	case "smtp":
		return NewSMTPTransport(cfg.SMTP)
	case "log":
		return NewLogTransport(), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
