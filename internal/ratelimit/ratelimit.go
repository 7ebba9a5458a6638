// Package ratelimit enforces the per-client submission cool-down.
//
// The only cross-request state in the gateway is a keyed last-submission
// timestamp. The Store interface keeps that state swappable between an
// in-process map, Redis, and the filesystem layout the original
// deployment used.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store persists the last accepted submission time per client key.
type Store interface {
	// Get returns the recorded timestamp for key. The bool reports
	// whether a record exists.
	Get(ctx context.Context, key string) (time.Time, bool, error)
	// Set records t as the last accepted submission for key.
	Set(ctx context.Context, key string, t time.Time) error
}

// ClientKey derives a stable, non-reversible key from a client IP.
func ClientKey(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}

// Limiter applies a cool-down window on top of a Store.
//
// Check and Record are deliberately separate calls: a record is written
// only after the notification email is actually delivered, so a failed
// send leaves the client free to retry immediately. Two requests from
// the same key racing through Check before either Records can both
// pass; the cool-down is a courtesy measure, not a consistency
// guarantee.
type Limiter struct {
	store  Store
	window time.Duration
	now    func() time.Time
}

// NewLimiter creates a limiter with the given backing store and window.
func NewLimiter(store Store, window time.Duration) *Limiter {
	return &Limiter{store: store, window: window, now: time.Now}
}

// Check reports how long the client must still wait. A zero duration
// means the submission may proceed.
func (l *Limiter) Check(ctx context.Context, key string) (time.Duration, error) {
	last, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	elapsed := l.now().Sub(last)
	if elapsed < l.window {
		return l.window - elapsed, nil
	}
	return 0, nil
}

// Record stamps the client key with the current time. Called only after
// a successful send.
func (l *Limiter) Record(ctx context.Context, key string) error {
	return l.store.Set(ctx, key, l.now())
}
