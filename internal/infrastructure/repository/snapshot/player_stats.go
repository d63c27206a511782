package snapshot

import (
	"context"

	"github.com/riskibarqy/teamhub/internal/domain/playerstat"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

func playerStatSchema() schema[playerstat.Stat] {
	return schema[playerstat.Stat]{
		id:    func(v playerstat.Stat) int64 { return v.ID },
		setID: func(v *playerstat.Stat, id int64) { v.ID = id },
		clone: func(v playerstat.Stat) playerstat.Stat {
			if v.Rating != nil {
				r := *v.Rating
				v.Rating = &r
			}
			return v
		},
		fks: map[string]foreignKey[playerstat.Stat]{
			"match_id":       {get: func(v playerstat.Stat) (int64, bool) { return refOf(v.MatchID) }},
			"team_member_id": {get: func(v playerstat.Stat) (int64, bool) { return refOf(v.TeamMemberID) }},
		},
	}
}

func playerStatConflict(candidate, existing playerstat.Stat) error {
	if existing.MatchID == candidate.MatchID && existing.TeamMemberID == candidate.TeamMemberID {
		return storeerr.Conflict("player_stat", "player stat already exists")
	}
	return nil
}

func (s *Store) CreatePlayerStat(_ context.Context, v playerstat.Stat) (playerstat.Stat, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	v.UpdatedAt = s.now()
	if err := v.Validate(); err != nil {
		return playerstat.Stat{}, err
	}
	if err := firstError(
		s.requireRef("match_id", store.FamilyMatch, v.MatchID),
		s.requireRef("team_member_id", store.FamilyTeamMember, v.TeamMemberID),
	); err != nil {
		return playerstat.Stat{}, err
	}
	return s.playerStats.insert(v, playerStatConflict)
}

func (s *Store) GetPlayerStat(_ context.Context, id int64) (playerstat.Stat, bool, error) {
	v, ok := s.playerStats.get(id)
	return v, ok, nil
}

func (s *Store) GetPlayerStatByMember(_ context.Context, matchID, teamMemberID int64) (playerstat.Stat, bool, error) {
	v, ok := s.playerStats.find(func(v playerstat.Stat) bool {
		return v.MatchID == matchID && v.TeamMemberID == teamMemberID
	})
	return v, ok, nil
}

func (s *Store) ListPlayerStats(_ context.Context, filter playerstat.Filter) ([]playerstat.Stat, error) {
	return s.playerStats.list(func(v playerstat.Stat) bool {
		if filter.MatchID != 0 && v.MatchID != filter.MatchID {
			return false
		}
		return filter.TeamMemberID == 0 || v.TeamMemberID == filter.TeamMemberID
	}, filter.Limit), nil
}

func (s *Store) UpdatePlayerStat(_ context.Context, id int64, patch playerstat.Patch) (playerstat.Stat, bool, error) {
	return s.playerStats.update(id, func(v *playerstat.Stat) error {
		patch.Apply(v)
		v.UpdatedAt = s.now()
		return v.Validate()
	}, playerStatConflict)
}

func (s *Store) DeletePlayerStat(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyPlayerStat, id)
}
