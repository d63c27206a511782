package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/match"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

func matchSchema() schema[match.Match] {
	return schema[match.Match]{
		id:    func(m match.Match) int64 { return m.ID },
		setID: func(m *match.Match, id int64) { m.ID = id },
		clone: func(m match.Match) match.Match {
			m.SeasonID = cloneID(m.SeasonID)
			m.GoalsFor = cloneInt(m.GoalsFor)
			m.GoalsAgainst = cloneInt(m.GoalsAgainst)
			return m
		},
		less: func(a, b match.Match) bool {
			if !a.ScheduledAt.Equal(b.ScheduledAt) {
				return a.ScheduledAt.Before(b.ScheduledAt)
			}
			return a.ID < b.ID
		},
		fks: map[string]foreignKey[match.Match]{
			"team_id": {get: func(m match.Match) (int64, bool) { return refOf(m.TeamID) }},
			"season_id": {
				get:   func(m match.Match) (int64, bool) { return optRef(m.SeasonID) },
				clear: func(m *match.Match) { m.SeasonID = nil },
			},
		},
	}
}

func (s *Store) CreateMatch(_ context.Context, m match.Match) (match.Match, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if m.Status == "" {
		m.Status = match.StatusScheduled
	}
	m.Opponent = strings.TrimSpace(m.Opponent)
	m.ScheduledAt = m.ScheduledAt.UTC()
	now := s.now()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := m.Validate(); err != nil {
		return match.Match{}, err
	}
	if err := firstError(
		s.requireRef("team_id", store.FamilyTeam, m.TeamID),
		s.requireTeamSeason(m.TeamID, m.SeasonID),
	); err != nil {
		return match.Match{}, err
	}
	return s.matches.insert(m, nil)
}

func (s *Store) GetMatch(_ context.Context, id int64) (match.Match, bool, error) {
	m, ok := s.matches.get(id)
	return m, ok, nil
}

func (s *Store) ListMatches(_ context.Context, filter match.Filter) ([]match.Match, error) {
	return s.matches.list(func(m match.Match) bool {
		if filter.TeamID != 0 && m.TeamID != filter.TeamID {
			return false
		}
		if filter.SeasonID != nil && (m.SeasonID == nil || *m.SeasonID != *filter.SeasonID) {
			return false
		}
		if filter.Status != "" && m.Status != filter.Status {
			return false
		}
		return true
	}, filter.Limit), nil
}

func (s *Store) UpdateMatch(_ context.Context, id int64, patch match.Patch) (match.Match, bool, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	refErr := s.requireOptRef("season_id", store.FamilySeason, patch.SeasonID)
	return updateChecked(s.matches, id, refErr, func(m *match.Match) error {
		patch.Apply(m)
		if patch.SeasonID != nil {
			if err := s.requireTeamSeason(m.TeamID, m.SeasonID); err != nil {
				return err
			}
		}
		m.ScheduledAt = m.ScheduledAt.UTC()
		m.UpdatedAt = s.now()
		return m.Validate()
	}, nil)
}

// DeleteMatch removes the match's lineup and detail rows concurrently, then
// the match itself.
func (s *Store) DeleteMatch(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyMatch, id)
}
