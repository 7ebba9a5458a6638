package contact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oxmics/metics-site/internal/config"
	"github.com/oxmics/metics-site/internal/mailer"
	"github.com/oxmics/metics-site/internal/pkg/httputil"
	"github.com/oxmics/metics-site/internal/pkg/logger"
	"github.com/oxmics/metics-site/internal/ratelimit"
)

type ack struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Handler is the submission gateway: one POST in, one notification
// email out (or a well-defined rejection). It is stateless per request;
// the rate limiter holds the only cross-request state.
type Handler struct {
	transport   mailer.Transport
	limiter     *ratelimit.Limiter
	composer    *Composer
	blocked     map[string]struct{}
	sendTimeout time.Duration
	destination string
	now         func() time.Time
}

// NewHandler wires the gateway from configuration and its collaborators.
func NewHandler(cfg *config.Config, transport mailer.Transport, limiter *ratelimit.Limiter) (*Handler, error) {
	composer, err := NewComposer(cfg.Mail, cfg.Contact)
	if err != nil {
		return nil, err
	}
	return &Handler{
		transport:   transport,
		limiter:     limiter,
		composer:    composer,
		blocked:     BlockedDomainSet(cfg.Contact.BlockedDomains),
		sendTimeout: cfg.Mail.Timeout(),
		destination: cfg.Mail.To,
		now:         time.Now,
	}, nil
}

// HandleSubmit processes one contact-form POST. Each step short-circuits
// on failure: rate limit, parse, sanitize, honeypot, validation,
// compose, send, record.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	submissionID := uuid.NewString()
	clientIP := clientAddr(r)
	key := ratelimit.ClientKey(clientIP)

	// Cheap rejection before the body is even read.
	wait, err := h.limiter.Check(r.Context(), key)
	if err != nil {
		// A broken store must not take the contact form down; the
		// cool-down is a courtesy measure.
		logger.Error("rate limit check failed", "submission_id", submissionID, "error", err.Error())
	} else if wait > 0 {
		httputil.TooManyRequests(w, wait, "Too many requests. Please wait before trying again.")
		return
	}

	sub, err := ParseSubmission(r)
	if err != nil {
		httputil.BadRequest(w, "No data received")
		return
	}

	sub.Sanitize()

	if sub.IsBot() {
		// Respond exactly like a success so the trap stays invisible;
		// the log line is the only observable difference.
		logger.Warn("honeypot tripped",
			"submission_id", submissionID,
			"ip_hash", key[:12],
		)
		httputil.OK(w, ack{OK: true})
		return
	}

	if err := sub.Validate(h.blocked); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			httputil.UnprocessableEntity(w, verr.Msg)
			return
		}
		httputil.BadRequest(w, err.Error())
		return
	}

	msg, err := h.composer.Compose(sub, h.now(), clientIP)
	if err != nil {
		httputil.InternalError(w, err, h.sendFailureMsg())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.sendTimeout)
	defer cancel()

	if err := h.transport.Send(ctx, msg); err != nil {
		// Transport detail stays in the logs; callers get a retry hint.
		logger.Error("notification send failed",
			"submission_id", submissionID,
			"email", sub.Email,
			"error", err.Error(),
		)
		httputil.Error(w, http.StatusInternalServerError, h.sendFailureMsg())
		return
	}

	// Recorded only after a delivered send, so a failed send leaves the
	// client free to retry immediately.
	if err := h.limiter.Record(r.Context(), key); err != nil {
		logger.Error("rate limit record failed", "submission_id", submissionID, "error", err.Error())
	}

	logger.Info("submission accepted",
		"submission_id", submissionID,
		"email", sub.Email,
		"company", sub.Company,
	)
	httputil.OK(w, ack{OK: true, Message: "Your message has been sent. We will be in touch soon."})
}

func (h *Handler) sendFailureMsg() string {
	return fmt.Sprintf("Failed to send email. Please try again or contact us directly at %s.", h.destination)
}

// clientAddr extracts the client IP. chi's RealIP middleware has already
// folded X-Forwarded-For into RemoteAddr when the server runs behind a
// proxy.
func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
