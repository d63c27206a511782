package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	classIntegrity          = "23"
)

// pgFailure is the driver-neutral part of *pq.Error and *pgconn.PgError.
type pgFailure struct {
	Code       string
	Message    string
	Table      string
	Column     string
	Constraint string
}

func asPgFailure(err error) (pgFailure, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgFailure{
			Code:       string(pqErr.Code),
			Message:    pqErr.Message,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Constraint: pqErr.Constraint,
		}, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgFailure{
			Code:       pgErr.Code,
			Message:    pgErr.Message,
			Table:      pgErr.TableName,
			Column:     pgErr.ColumnName,
			Constraint: pgErr.ConstraintName,
		}, true
	}
	return pgFailure{}, false
}

type constraintInfo struct {
	field   string
	message string
}

// Messages match the snapshot store so callers see one vocabulary.
var constraintMessages = map[string]constraintInfo{
	"users_username_key":                          {"username", "username already exists"},
	"users_email_key":                             {"email", "email already exists"},
	"teams_join_code_key":                         {"join_code", "join code already exists"},
	"team_members_team_id_user_id_key":            {"team_member", "team member already exists"},
	"team_members_identity_check":                 {"display_name", "display_name is required"},
	"invitations_team_id_email_key":               {"invitation", "invitation already exists"},
	"invitations_token_key":                       {"token", "invitation token already exists"},
	"league_classifications_team_name_season_key": {"external_team_name", "classification already exists"},
	"player_stats_match_id_team_member_id_key":    {"player_stat", "player stat already exists"},
	"event_attendance_event_id_user_id_key":       {"attendance", "attendance already exists"},
	"league_classifications_season_team_fkey":     {"season_id", "season does not exist for this team"},
	"matches_season_team_fkey":                    {"season_id", "season does not exist for this team"},
	"seasons_date_range_check":                    {"end_date", "end_date must not be before start_date"},
	"events_time_range_check":                     {"ends_at", "ends_at must not be before starts_at"},
}

// translate maps driver failures into the storeerr taxonomy. Errors that
// already belong to it pass through.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := storeerr.As(err); ok {
		return err
	}
	f, ok := asPgFailure(err)
	if !ok {
		return storeerr.Internal(err, op)
	}

	var out *storeerr.Error
	switch {
	case f.Code == codeUniqueViolation:
		field, msg := describe(f, "_key")
		if msg == "" {
			msg = field + " already exists"
		}
		out = storeerr.Conflict(field, msg)
	case f.Code == codeForeignKeyViolation:
		out = foreignKeyViolation(f)
	case f.Code == codeNotNullViolation:
		out = storeerr.Required(f.Column)
	case strings.HasPrefix(f.Code, classIntegrity):
		field, msg := describe(f, "_check")
		if msg == "" {
			msg = fmt.Sprintf("%s violates %s", field, f.Constraint)
		}
		out = storeerr.Integrity(field, msg)
	default:
		return storeerr.Internal(err, op)
	}
	out.Constraint = f.Constraint
	out.Err = err
	return out
}

func foreignKeyViolation(f pgFailure) *storeerr.Error {
	column := f.Column
	info, known := constraintMessages[f.Constraint]
	switch {
	case known:
		column = info.field
	case column == "":
		column = columnFromConstraint(f.Constraint, f.Table, "_fkey")
	}
	// Deleting a parent that is still referenced, as opposed to pointing a
	// row at a parent that does not exist.
	if strings.HasPrefix(f.Message, "update or delete on table") {
		return storeerr.Reference(column, fmt.Sprintf("row is still referenced by %s.%s", f.Table, column))
	}
	if known {
		return storeerr.Reference(column, info.message)
	}
	return storeerr.MissingReference(column)
}

func describe(f pgFailure, suffix string) (string, string) {
	if info, ok := constraintMessages[f.Constraint]; ok {
		return info.field, info.message
	}
	if f.Column != "" {
		return f.Column, ""
	}
	return columnFromConstraint(f.Constraint, f.Table, suffix), ""
}

// columnFromConstraint reverses the default constraint naming
// <table>_<column>_<suffix>.
func columnFromConstraint(constraint, table, suffix string) string {
	name := strings.TrimSuffix(constraint, suffix)
	if table != "" {
		name = strings.TrimPrefix(name, table+"_")
	}
	if name == "" {
		return constraint
	}
	return name
}

// isInfraFailure decides what trips the circuit breaker: integrity errors,
// absent rows and cancelled requests say nothing about database health.
func isInfraFailure(err error) bool {
	switch {
	case err == nil, isNotFound(err), errors.Is(err, context.Canceled):
		return false
	}
	if se, ok := storeerr.As(err); ok && se.Kind != storeerr.KindInternal {
		return false
	}
	if f, ok := asPgFailure(err); ok && strings.HasPrefix(f.Code, classIntegrity) {
		return false
	}
	return true
}
