package postgres

import (
	"context"

	"github.com/riskibarqy/teamhub/internal/domain/lineup"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

const (
	teamLineupUpsert = `ON CONFLICT (team_id) DO UPDATE SET
    formation = EXCLUDED.formation,
    slots = EXCLUDED.slots,
    updated_at = EXCLUDED.updated_at`

	matchLineupUpsert = `ON CONFLICT (match_id) DO UPDATE SET
    formation = EXCLUDED.formation,
    starters = EXCLUDED.starters,
    substitutes = EXCLUDED.substitutes,
    updated_at = EXCLUDED.updated_at`
)

type LineupRepository struct {
	c *conn
}

func (r *LineupRepository) GetTeamLineup(ctx context.Context, teamID int64) (lineup.TeamLineup, bool, error) {
	return get(ctx, r.c, teamLineupMapping, "get team lineup", qb.Eq("team_id", teamID))
}

// SaveTeamLineup replaces the team's lineup, keeping its id.
func (r *LineupRepository) SaveTeamLineup(ctx context.Context, l lineup.TeamLineup) (lineup.TeamLineup, error) {
	l = l.Clone()
	l.UpdatedAt = r.c.now()
	if err := l.Validate(); err != nil {
		return lineup.TeamLineup{}, err
	}
	var out lineup.TeamLineup
	err := r.c.run(ctx, "save team lineup", func(ctx context.Context) error {
		var err error
		out, err = insertReturning(ctx, r.c.db, teamLineupMapping, l, teamLineupUpsert)
		return err
	})
	return out, err
}

func (r *LineupRepository) DeleteTeamLineup(ctx context.Context, teamID int64) (bool, error) {
	return remove(ctx, r.c, teamLineupMapping.table, "delete team lineup", qb.Eq("team_id", teamID))
}

func (r *LineupRepository) GetMatchLineup(ctx context.Context, matchID int64) (lineup.MatchLineup, bool, error) {
	return get(ctx, r.c, matchLineupMapping, "get match lineup", qb.Eq("match_id", matchID))
}

// SaveMatchLineup replaces the match's lineup, keeping its id.
func (r *LineupRepository) SaveMatchLineup(ctx context.Context, l lineup.MatchLineup) (lineup.MatchLineup, error) {
	l = l.Clone()
	l.UpdatedAt = r.c.now()
	if err := l.Validate(); err != nil {
		return lineup.MatchLineup{}, err
	}
	var out lineup.MatchLineup
	err := r.c.run(ctx, "save match lineup", func(ctx context.Context) error {
		var err error
		out, err = insertReturning(ctx, r.c.db, matchLineupMapping, l, matchLineupUpsert)
		return err
	})
	return out, err
}

func (r *LineupRepository) DeleteMatchLineup(ctx context.Context, matchID int64) (bool, error) {
	return remove(ctx, r.c, matchLineupMapping.table, "delete match lineup", qb.Eq("match_id", matchID))
}
