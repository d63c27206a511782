package postgres

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/teamhub/internal/domain/session"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

const (
	sessionTable                = "user_sessions"
	defaultSessionTTL           = 24 * time.Hour
	defaultSessionSweepInterval = 15 * time.Minute
)

type sessionTableModel struct {
	ID     string                     `db:"sid"`
	Data   jsonColumn[map[string]any] `db:"sess"`
	Expire time.Time                  `db:"expire"`
}

// SessionRepository keeps sessions in user_sessions. Expired rows stay
// invisible to Get until Sweep removes them.
type SessionRepository struct {
	c        *conn
	ttl      time.Duration
	interval time.Duration
}

func newSessionRepository(c *conn, ttl, interval time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if interval <= 0 {
		interval = defaultSessionSweepInterval
	}
	return &SessionRepository{c: c, ttl: ttl, interval: interval}
}

func (r *SessionRepository) Get(ctx context.Context, sid string) (session.Session, bool, error) {
	var (
		out   session.Session
		found bool
	)
	err := r.c.run(ctx, "get session", func(ctx context.Context) error {
		query, args, err := qb.Select("*").From(sessionTable).
			Where(qb.Eq("sid", sid), qb.Expr("expire > ?", r.c.now())).
			Limit(1).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build get session query: %w", err)
		}

		var row sessionTableModel
		if err := sqlx.GetContext(ctx, r.c.db, &row, query, args...); err != nil {
			if isNotFound(err) {
				return nil
			}
			return fmt.Errorf("get session: %w", err)
		}
		found = true
		out = session.Session{ID: row.ID, Data: row.Data.V, ExpiresAt: row.Expire.UTC()}
		if out.Data == nil {
			out.Data = map[string]any{}
		}
		return nil
	})
	return out, found, err
}

func (r *SessionRepository) Set(ctx context.Context, s session.Session) error {
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = r.c.now().Add(r.ttl)
	}
	row := sessionTableModel{
		ID:     s.ID,
		Data:   jsonColumn[map[string]any]{V: maps.Clone(s.Data)},
		Expire: s.ExpiresAt.UTC(),
	}
	if row.Data.V == nil {
		row.Data.V = map[string]any{}
	}

	return r.c.run(ctx, "set session", func(ctx context.Context) error {
		query, args, err := qb.InsertModel(sessionTable, row,
			"ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire")
		if err != nil {
			return fmt.Errorf("build set session query: %w", err)
		}
		if _, err := r.c.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
}

func (r *SessionRepository) Destroy(ctx context.Context, sid string) error {
	_, err := remove(ctx, r.c, sessionTable, "destroy session", qb.Eq("sid", sid))
	return err
}

func (r *SessionRepository) Sweep(ctx context.Context) (int, error) {
	var removed int64
	err := r.c.run(ctx, "sweep sessions", func(ctx context.Context) error {
		query, args, err := qb.DeleteFrom(sessionTable).Where(qb.Expr("expire <= ?", r.c.now())).ToSQL()
		if err != nil {
			return fmt.Errorf("build sweep sessions query: %w", err)
		}
		res, err := r.c.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("sweep sessions: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	})
	return int(removed), err
}

func (r *SessionRepository) SweepInterval() time.Duration {
	return r.interval
}
