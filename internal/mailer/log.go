package mailer

import (
	"context"

	"github.com/oxmics/metics-site/internal/pkg/logger"
)

// LogTransport records the message in the structured log and delivers
// nothing. Used in development and in tests of the wiring.
type LogTransport struct{}

// NewLogTransport creates a log-only transport.
func NewLogTransport() *LogTransport {
	return &LogTransport{}
}

// Send logs the message instead of delivering it.
func (t *LogTransport) Send(_ context.Context, msg *Message) error {
	logger.Info("mail transport disabled, logging message",
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"body_bytes", len(msg.Body),
	)
	return nil
}
