package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

func TestTranslate_UniqueViolation(t *testing.T) {
	t.Parallel()

	raw := &pq.Error{Code: "23505", Table: "teams", Constraint: "teams_join_code_key", Message: "duplicate key value"}
	err := translate(fmt.Errorf("insert teams: %w", raw), "create team")

	se, ok := storeerr.As(err)
	require.True(t, ok)
	assert.Equal(t, storeerr.KindConflict, se.Kind)
	assert.Equal(t, "join_code", se.Field)
	assert.Equal(t, "teams_join_code_key", se.Constraint)
	assert.Equal(t, "join code already exists", se.Error())
	assert.True(t, errors.Is(err, storeerr.ErrConflict))
	assert.True(t, errors.As(err, new(*pq.Error)))
}

func TestTranslate_UnknownUniqueConstraintFallsBackToColumn(t *testing.T) {
	t.Parallel()

	raw := &pgconn.PgError{Code: "23505", TableName: "match_photos", ConstraintName: "match_photos_url_key"}
	se, ok := storeerr.As(translate(raw, "create photo"))
	require.True(t, ok)
	assert.Equal(t, storeerr.KindConflict, se.Kind)
	assert.Equal(t, "url", se.Field)
	assert.Equal(t, "url already exists", se.Message)
}

func TestTranslate_ForeignKeyViolation(t *testing.T) {
	t.Parallel()

	t.Run("missing parent", func(t *testing.T) {
		raw := &pq.Error{
			Code:       "23503",
			Table:      "team_members",
			Constraint: "team_members_team_id_fkey",
			Message:    `insert or update on table "team_members" violates foreign key constraint "team_members_team_id_fkey"`,
		}
		se, ok := storeerr.As(translate(raw, "create team member"))
		require.True(t, ok)
		assert.Equal(t, storeerr.KindReferenceIntegrity, se.Kind)
		assert.Equal(t, "team_id", se.Field)
		assert.Equal(t, "referenced team does not exist", se.Error())
	})

	t.Run("parent still referenced", func(t *testing.T) {
		raw := &pgconn.PgError{
			Code:           "23503",
			TableName:      "league_classifications",
			ConstraintName: "league_classifications_season_team_fkey",
			Message:        `update or delete on table "seasons" violates foreign key constraint "league_classifications_season_team_fkey" on table "league_classifications"`,
		}
		se, ok := storeerr.As(translate(raw, "delete season"))
		require.True(t, ok)
		assert.Equal(t, storeerr.KindReferenceIntegrity, se.Kind)
		assert.Equal(t, "season_id", se.Field)
		assert.Equal(t, "row is still referenced by league_classifications.season_id", se.Error())
	})

	t.Run("season of another team", func(t *testing.T) {
		raw := &pq.Error{
			Code:       "23503",
			Table:      "matches",
			Constraint: "matches_season_team_fkey",
			Message:    `insert or update on table "matches" violates foreign key constraint "matches_season_team_fkey"`,
		}
		se, ok := storeerr.As(translate(raw, "create match"))
		require.True(t, ok)
		assert.Equal(t, storeerr.KindReferenceIntegrity, se.Kind)
		assert.Equal(t, "season_id", se.Field)
		assert.Equal(t, "season does not exist for this team", se.Error())
		assert.Equal(t, "matches_season_team_fkey", se.Constraint)
	})
}

func TestTranslate_NotNullAndChecks(t *testing.T) {
	t.Parallel()

	se, ok := storeerr.As(translate(&pq.Error{Code: "23502", Table: "users", Column: "email"}, "create user"))
	require.True(t, ok)
	assert.Equal(t, storeerr.KindRequiredField, se.Kind)
	assert.Equal(t, "email is required", se.Error())

	se, ok = storeerr.As(translate(&pq.Error{Code: "23514", Table: "events", Constraint: "events_time_range_check"}, "create event"))
	require.True(t, ok)
	assert.Equal(t, storeerr.KindIntegrityOther, se.Kind)
	assert.Equal(t, "ends_at", se.Field)
	assert.Equal(t, "ends_at must not be before starts_at", se.Error())

	se, ok = storeerr.As(translate(&pq.Error{Code: "23514", Table: "matches", Constraint: "matches_status_check"}, "update match"))
	require.True(t, ok)
	assert.Equal(t, storeerr.KindIntegrityOther, se.Kind)
	assert.Equal(t, "status", se.Field)
	assert.Equal(t, "status violates matches_status_check", se.Error())
}

func TestTranslate_Passthrough(t *testing.T) {
	t.Parallel()

	assert.NoError(t, translate(nil, "noop"))

	typed := storeerr.Required("name")
	assert.Same(t, typed, translate(typed, "create team"))

	cause := errors.New("connection refused")
	err := translate(cause, "list teams")
	assert.Equal(t, storeerr.KindInternal, storeerr.KindOf(err))
	assert.ErrorIs(t, err, cause)

	err = translate(&pq.Error{Code: "57P01", Message: "terminating connection"}, "list teams")
	assert.Equal(t, storeerr.KindInternal, storeerr.KindOf(err))
}

func TestColumnFromConstraint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "created_by", columnFromConstraint("teams_created_by_fkey", "teams", "_fkey"))
	assert.Equal(t, "team_members_user_id", columnFromConstraint("team_members_user_id_fkey", "", "_fkey"))
	assert.Equal(t, "odd", columnFromConstraint("odd", "teams", "_fkey"))
}

func TestIsInfraFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no rows", fmt.Errorf("get users: %w", sql.ErrNoRows), false},
		{"cancelled", context.Canceled, false},
		{"taxonomy conflict", storeerr.Conflict("email", ""), false},
		{"taxonomy internal", storeerr.Internal(errors.New("boom"), "op"), true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"check violation", &pgconn.PgError{Code: "23514"}, false},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"dial failure", errors.New("dial tcp: connection refused"), true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isInfraFailure(tc.err), tc.name)
	}
}
