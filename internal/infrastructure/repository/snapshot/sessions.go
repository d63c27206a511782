package snapshot

import (
	"context"
	"maps"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/teamhub/internal/domain/session"
	"github.com/riskibarqy/teamhub/internal/platform/cache"
)

const (
	defaultSessionTTL           = 24 * time.Hour
	defaultSessionSweepInterval = 15 * time.Minute
)

// sessionStore keeps sessions in process memory; they do not survive a
// restart, unlike the collections.
type sessionStore struct {
	entries  *cache.Store
	clock    clockwork.Clock
	interval time.Duration
}

func newSessionStore(clock clockwork.Clock, ttl, interval time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if interval <= 0 {
		interval = defaultSessionSweepInterval
	}
	return &sessionStore{
		entries:  cache.NewStore(ttl, clock),
		clock:    clock,
		interval: interval,
	}
}

func (s *sessionStore) Get(ctx context.Context, sid string) (session.Session, bool, error) {
	v, ok := s.entries.Get(ctx, sid)
	if !ok {
		return session.Session{}, false, nil
	}
	sess := v.(session.Session)
	sess.Data = maps.Clone(sess.Data)
	return sess, true, nil
}

func (s *sessionStore) Set(ctx context.Context, sess session.Session) error {
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = s.clock.Now().Add(s.entries.TTL())
	}
	sess.ExpiresAt = sess.ExpiresAt.UTC()
	sess.Data = maps.Clone(sess.Data)
	s.entries.SetUntil(ctx, sess.ID, sess, sess.ExpiresAt)
	return nil
}

func (s *sessionStore) Destroy(ctx context.Context, sid string) error {
	s.entries.Delete(ctx, sid)
	return nil
}

func (s *sessionStore) Sweep(ctx context.Context) (int, error) {
	return s.entries.Sweep(ctx), nil
}

func (s *sessionStore) SweepInterval() time.Duration {
	return s.interval
}
