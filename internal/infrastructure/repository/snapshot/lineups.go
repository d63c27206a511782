package snapshot

import (
	"context"

	"github.com/riskibarqy/teamhub/internal/domain/lineup"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

func teamLineupSchema() schema[lineup.TeamLineup] {
	return schema[lineup.TeamLineup]{
		id:    func(l lineup.TeamLineup) int64 { return l.ID },
		setID: func(l *lineup.TeamLineup, id int64) { l.ID = id },
		clone: lineup.TeamLineup.Clone,
		fks: map[string]foreignKey[lineup.TeamLineup]{
			"team_id": {get: func(l lineup.TeamLineup) (int64, bool) { return refOf(l.TeamID) }},
		},
	}
}

func matchLineupSchema() schema[lineup.MatchLineup] {
	return schema[lineup.MatchLineup]{
		id:    func(l lineup.MatchLineup) int64 { return l.ID },
		setID: func(l *lineup.MatchLineup, id int64) { l.ID = id },
		clone: lineup.MatchLineup.Clone,
		fks: map[string]foreignKey[lineup.MatchLineup]{
			"match_id": {get: func(l lineup.MatchLineup) (int64, bool) { return refOf(l.MatchID) }},
		},
	}
}

func (s *Store) GetTeamLineup(_ context.Context, teamID int64) (lineup.TeamLineup, bool, error) {
	l, ok := s.teamLineups.find(func(l lineup.TeamLineup) bool { return l.TeamID == teamID })
	return l, ok, nil
}

// SaveTeamLineup replaces the team's lineup, keeping its id.
func (s *Store) SaveTeamLineup(_ context.Context, l lineup.TeamLineup) (lineup.TeamLineup, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	l = l.Clone()
	l.UpdatedAt = s.now()
	if err := l.Validate(); err != nil {
		return lineup.TeamLineup{}, err
	}
	if err := s.requireRef("team_id", store.FamilyTeam, l.TeamID); err != nil {
		return lineup.TeamLineup{}, err
	}
	return s.teamLineups.upsert(func(existing lineup.TeamLineup) bool {
		return existing.TeamID == l.TeamID
	}, func(*lineup.TeamLineup) (lineup.TeamLineup, error) {
		return l, nil
	})
}

func (s *Store) DeleteTeamLineup(ctx context.Context, teamID int64) (bool, error) {
	l, ok := s.teamLineups.find(func(l lineup.TeamLineup) bool { return l.TeamID == teamID })
	if !ok {
		return false, nil
	}
	return s.deleteRoot(ctx, store.FamilyTeamLineup, l.ID)
}

func (s *Store) GetMatchLineup(_ context.Context, matchID int64) (lineup.MatchLineup, bool, error) {
	l, ok := s.matchLineups.find(func(l lineup.MatchLineup) bool { return l.MatchID == matchID })
	return l, ok, nil
}

// SaveMatchLineup replaces the match's lineup, keeping its id.
func (s *Store) SaveMatchLineup(_ context.Context, l lineup.MatchLineup) (lineup.MatchLineup, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	l = l.Clone()
	l.UpdatedAt = s.now()
	if err := l.Validate(); err != nil {
		return lineup.MatchLineup{}, err
	}
	if err := s.requireRef("match_id", store.FamilyMatch, l.MatchID); err != nil {
		return lineup.MatchLineup{}, err
	}
	return s.matchLineups.upsert(func(existing lineup.MatchLineup) bool {
		return existing.MatchID == l.MatchID
	}, func(*lineup.MatchLineup) (lineup.MatchLineup, error) {
		return l, nil
	})
}

func (s *Store) DeleteMatchLineup(ctx context.Context, matchID int64) (bool, error) {
	l, ok := s.matchLineups.find(func(l lineup.MatchLineup) bool { return l.MatchID == matchID })
	if !ok {
		return false, nil
	}
	return s.deleteRoot(ctx, store.FamilyMatchLineup, l.ID)
}
