// Package session defines the session record handed to the auth layer and
// the store contract both backends implement.
package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/teamhub/internal/platform/logging"
)

// Session is an opaque blob keyed by sid. A zero ExpiresAt on Set means
// "now plus the store's TTL".
type Session struct {
	ID        string         `json:"sid"`
	Data      map[string]any `json:"sess"`
	ExpiresAt time.Time      `json:"expire"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now)
}

type Store interface {
	// Get returns false for unknown and for expired sessions.
	Get(ctx context.Context, sid string) (Session, bool, error)
	Set(ctx context.Context, s Session) error
	Destroy(ctx context.Context, sid string) error
	// Sweep removes expired sessions and reports how many were removed.
	Sweep(ctx context.Context) (int, error)
	SweepInterval() time.Duration
}

// RunSweeper sweeps store every SweepInterval until ctx is done.
func RunSweeper(ctx context.Context, store Store, clock clockwork.Clock, logger *logging.Logger) {
	interval := store.SweepInterval()
	if interval <= 0 {
		return
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			removed, err := store.Sweep(ctx)
			if err != nil {
				logger.WarnContext(ctx, "session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				logger.DebugContext(ctx, "expired sessions swept", "removed", removed)
			}
		}
	}
}
