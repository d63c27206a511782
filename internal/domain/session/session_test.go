package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/teamhub/internal/platform/logging"
)

type countingStore struct {
	mu     sync.Mutex
	sweeps int
	swept  chan struct{}
}

func (s *countingStore) Get(context.Context, string) (Session, bool, error) { return Session{}, false, nil }
func (s *countingStore) Set(context.Context, Session) error { return nil }
func (s *countingStore) Destroy(context.Context, string) error { return nil }
func (s *countingStore) SweepInterval() time.Duration { return time.Minute }

func (s *countingStore) Sweep(context.Context) (int, error) {
	s.mu.Lock()
	s.sweeps++
	s.mu.Unlock()
	s.swept <- struct{}{}
	return 1, nil
}

func TestRunSweeper_SweepsOnEveryTick(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := &countingStore{swept: make(chan struct{}, 4)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, store, clock, logging.NewNop())
		close(done)
	}()

	for i := 0; i < 2; i++ {
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("wait for ticker: %v", err)
		}
		clock.Advance(time.Minute)
		select {
		case <-store.swept:
		case <-time.After(2 * time.Second):
			t.Fatalf("sweep %d did not run", i+1)
		}
	}

	cancel()
	<-done
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.sweeps != 2 {
		t.Fatalf("expected 2 sweeps, got %d", store.sweeps)
	}
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if (Session{}).Expired(now) {
		t.Fatalf("zero expiry must not count as expired")
	}
	if !(Session{ExpiresAt: now}).Expired(now) {
		t.Fatalf("expiry equal to now must count as expired")
	}
	if (Session{ExpiresAt: now.Add(time.Second)}).Expired(now) {
		t.Fatalf("future expiry must not count as expired")
	}
}
