// Package postgres is the relational backend. Foreign key actions declared by
// the schema carry the cascade plan; the repositories only translate driver
// errors and keep timestamps in UTC.
package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/teamhub/internal/domain/session"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/platform/joincode"
	"github.com/riskibarqy/teamhub/internal/platform/logging"
	"github.com/riskibarqy/teamhub/internal/platform/resilience"
)

const defaultJoinCodeAttempts = 10

type Options struct {
	Clock  clockwork.Clock
	Logger *logging.Logger

	JoinCodes        joincode.Generator
	JoinCodeAttempts int

	// Breaker guards every statement; a zero value or Enabled=false runs
	// without one.
	Breaker resilience.CircuitBreakerConfig

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
}

type Store struct {
	*UserRepository
	*TeamRepository
	*MemberRepository
	*InvitationRepository
	*AnnouncementRepository
	*SeasonRepository
	*ClassificationRepository
	*MatchRepository
	*MatchDetailRepository
	*PlayerStatRepository
	*EventRepository
	*AttendanceRepository
	*LineupRepository

	conn     *conn
	sessions *SessionRepository
}

var _ store.Repository = (*Store)(nil)

// New wraps an open pool. The schema is expected to be migrated already.
func New(db *sqlx.DB, opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.JoinCodes == nil {
		opts.JoinCodes = joincode.NewRandomGenerator()
	}
	if opts.JoinCodeAttempts <= 0 {
		opts.JoinCodeAttempts = defaultJoinCodeAttempts
	}

	c := &conn{
		db:     db,
		logger: opts.Logger.Named("postgres"),
		clock:  opts.Clock,
	}
	if opts.Breaker.Enabled {
		c.breaker = resilience.NewCircuitBreaker(opts.Breaker, opts.Clock)
	}

	return &Store{
		UserRepository:           &UserRepository{c: c},
		TeamRepository:           &TeamRepository{c: c, codes: opts.JoinCodes, attempts: opts.JoinCodeAttempts},
		MemberRepository:         &MemberRepository{c: c},
		InvitationRepository:     &InvitationRepository{c: c},
		AnnouncementRepository:   &AnnouncementRepository{c: c},
		SeasonRepository:         &SeasonRepository{c: c},
		ClassificationRepository: &ClassificationRepository{c: c},
		MatchRepository:          &MatchRepository{c: c},
		MatchDetailRepository:    &MatchDetailRepository{c: c},
		PlayerStatRepository:     &PlayerStatRepository{c: c},
		EventRepository:          &EventRepository{c: c},
		AttendanceRepository:     &AttendanceRepository{c: c},
		LineupRepository:         &LineupRepository{c: c},
		conn:                     c,
		sessions:                 newSessionRepository(c, opts.SessionTTL, opts.SessionSweepInterval),
	}
}

func (s *Store) SessionStore() session.Store {
	return s.sessions
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.run(ctx, "ping", func(ctx context.Context) error {
		return s.conn.db.PingContext(ctx)
	})
}

func (s *Store) Close() error {
	return s.conn.db.Close()
}
