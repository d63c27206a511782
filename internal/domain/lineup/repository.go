package lineup

import "context"

// Repository exposes lineup persistence. Lineups are keyed by their parent,
// so saving replaces the existing lineup while keeping its id.
type Repository interface {
	GetTeamLineup(ctx context.Context, teamID int64) (TeamLineup, bool, error)
	SaveTeamLineup(ctx context.Context, l TeamLineup) (TeamLineup, error)
	DeleteTeamLineup(ctx context.Context, teamID int64) (bool, error)

	GetMatchLineup(ctx context.Context, matchID int64) (MatchLineup, bool, error)
	SaveMatchLineup(ctx context.Context, l MatchLineup) (MatchLineup, error)
	DeleteMatchLineup(ctx context.Context, matchID int64) (bool, error)
}
