package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Poolers running in transaction mode drop unnamed prepared statements
// between calls; both failures clear up when the statement is re-sent.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") || strings.Contains(msg, "(26000)")
}

func isStatementRetryable(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

// mapping ties a table model R to its domain type T.
type mapping[R, T any] struct {
	table    string
	order    []string
	toDomain func(R) T
	toRow    func(T) R
}

func (m mapping[R, T]) selectBuilder() *qb.SelectBuilder {
	b := qb.Select("*").From(m.table)
	if len(m.order) > 0 {
		b.OrderBy(m.order...)
	} else {
		b.OrderBy("id")
	}
	return b
}

func getOne[R, T any](ctx context.Context, q sqlx.QueryerContext, m mapping[R, T], conds ...qb.Condition) (T, bool, error) {
	var zero T
	query, args, err := qb.Select("*").From(m.table).Where(conds...).Limit(1).ToSQL()
	if err != nil {
		return zero, false, fmt.Errorf("build get %s query: %w", m.table, err)
	}

	var row R
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("get %s: %w", m.table, err)
	}
	return m.toDomain(row), true, nil
}

func selectMany[R, T any](ctx context.Context, q sqlx.QueryerContext, m mapping[R, T], limit int, conds ...qb.Condition) ([]T, error) {
	query, args, err := m.selectBuilder().Where(conds...).Limit(limit).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list %s query: %w", m.table, err)
	}

	var rows []R
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", m.table, err)
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, m.toDomain(row))
	}
	return out, nil
}

func insertReturning[R, T any](ctx context.Context, q sqlx.QueryerContext, m mapping[R, T], v T, suffix string) (T, error) {
	var zero T
	query, args, err := qb.InsertModel(m.table, m.toRow(v), strings.TrimSpace(suffix+" RETURNING *"))
	if err != nil {
		return zero, fmt.Errorf("build insert %s query: %w", m.table, err)
	}

	var row R
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return zero, fmt.Errorf("insert %s: %w", m.table, err)
	}
	return m.toDomain(row), nil
}

// updateLocked reads the row FOR UPDATE, lets mutate merge the patch and
// writes every writable column back.
func updateLocked[R, T any](ctx context.Context, tx *sqlx.Tx, m mapping[R, T], id int64, mutate func(*T) error) (T, bool, error) {
	var zero T
	query, args, err := qb.Select("*").From(m.table).Where(qb.Eq("id", id)).Suffix("FOR UPDATE").ToSQL()
	if err != nil {
		return zero, false, fmt.Errorf("build lock %s query: %w", m.table, err)
	}

	var current R
	if err := tx.GetContext(ctx, &current, query, args...); err != nil {
		if isNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("lock %s: %w", m.table, err)
	}

	next := m.toDomain(current)
	if err := mutate(&next); err != nil {
		return zero, true, err
	}

	query, args, err = qb.UpdateModel(m.table, m.toRow(next), qb.Eq("id", id), "RETURNING *")
	if err != nil {
		return zero, true, fmt.Errorf("build update %s query: %w", m.table, err)
	}
	var row R
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return zero, true, fmt.Errorf("update %s: %w", m.table, err)
	}
	return m.toDomain(row), true, nil
}

func deleteWhere(ctx context.Context, e sqlx.ExecerContext, table string, conds ...qb.Condition) (bool, error) {
	query, args, err := qb.DeleteFrom(table).Where(conds...).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete %s query: %w", table, err)
	}

	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s rows affected: %w", table, err)
	}
	return affected > 0, nil
}

func nullableInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func nullInt64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func nullableInt(value *int) sql.NullInt32 {
	if value == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*value), Valid: true}
}

func nullIntPtr(value sql.NullInt32) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int32)
	return &v
}

func nullableTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Time.UTC()
	return &v
}

func nullableFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}

func nullFloatPtr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}
