package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/platform/logging"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
	"github.com/riskibarqy/teamhub/internal/platform/resilience"
)

// conn is shared by every family repository of one Store.
type conn struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
	clock   clockwork.Clock
}

func (c *conn) now() time.Time {
	return c.clock.Now().UTC()
}

// run executes fn behind the circuit breaker and returns a storeerr value.
// A statement dropped by a transaction-mode pooler is re-sent once.
func (c *conn) run(ctx context.Context, op string, fn func(context.Context) error) error {
	call := func() error {
		err := fn(ctx)
		if isStatementRetryable(err) {
			c.logger.WarnContext(ctx, "retrying statement", "op", op, "error", err)
			err = fn(ctx)
		}
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call, isInfraFailure)
	} else {
		err = call()
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "database circuit open", "op", op, "state", string(c.breaker.State()))
		return storeerr.Internal(err, op)
	}

	translated := translate(err, op)
	if se, ok := storeerr.As(translated); ok && se.Kind != storeerr.KindInternal {
		c.logger.DebugContext(ctx, "integrity error", "op", op, "kind", se.Kind.String(), "constraint", se.Constraint)
		return translated
	}
	c.logger.ErrorContext(ctx, "storage operation failed", "op", op, "error", err)
	return translated
}

func (c *conn) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	return c.run(ctx, op, func(ctx context.Context) error {
		tx, err := c.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if err := fn(ctx, tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// get, list, create, update and remove run the query helpers through c.run.

func get[R, T any](ctx context.Context, c *conn, m mapping[R, T], op string, conds ...qb.Condition) (T, bool, error) {
	var (
		out   T
		found bool
	)
	err := c.run(ctx, op, func(ctx context.Context) error {
		var err error
		out, found, err = getOne(ctx, c.db, m, conds...)
		return err
	})
	return out, found, err
}

func list[R, T any](ctx context.Context, c *conn, m mapping[R, T], op string, limit int, conds ...qb.Condition) ([]T, error) {
	var out []T
	err := c.run(ctx, op, func(ctx context.Context) error {
		var err error
		out, err = selectMany(ctx, c.db, m, limit, conds...)
		return err
	})
	return out, err
}

func create[R, T any](ctx context.Context, c *conn, m mapping[R, T], op string, v T) (T, error) {
	var out T
	err := c.run(ctx, op, func(ctx context.Context) error {
		var err error
		out, err = insertReturning(ctx, c.db, m, v, "")
		return err
	})
	return out, err
}

func update[R, T any](ctx context.Context, c *conn, m mapping[R, T], op string, id int64, mutate func(*T) error) (T, bool, error) {
	var (
		out   T
		found bool
	)
	err := c.inTx(ctx, op, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		out, found, err = updateLocked(ctx, tx, m, id, mutate)
		return err
	})
	if err != nil {
		var zero T
		return zero, found, err
	}
	return out, found, nil
}

func remove(ctx context.Context, c *conn, table, op string, conds ...qb.Condition) (bool, error) {
	var removed bool
	err := c.run(ctx, op, func(ctx context.Context) error {
		var err error
		removed, err = deleteWhere(ctx, c.db, table, conds...)
		return err
	})
	return removed, err
}
