package snapshot

import (
	"context"
	"errors"

	"github.com/riskibarqy/teamhub/internal/domain/season"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

func seasonSchema() schema[season.Season] {
	return schema[season.Season]{
		id:    func(s season.Season) int64 { return s.ID },
		setID: func(s *season.Season, id int64) { s.ID = id },
		fks: map[string]foreignKey[season.Season]{
			"team_id": {get: func(s season.Season) (int64, bool) { return refOf(s.TeamID) }},
		},
	}
}

func (s *Store) CreateSeason(_ context.Context, se season.Season) (season.Season, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	se.StartDate, se.EndDate = se.StartDate.UTC(), se.EndDate.UTC()
	se.CreatedAt = s.now()
	if err := se.Validate(); err != nil {
		return season.Season{}, err
	}
	if err := s.requireRef("team_id", store.FamilyTeam, se.TeamID); err != nil {
		return season.Season{}, err
	}
	return s.seasons.insert(se, nil)
}

func (s *Store) GetSeason(_ context.Context, id int64) (season.Season, bool, error) {
	se, ok := s.seasons.get(id)
	return se, ok, nil
}

func (s *Store) ListSeasons(_ context.Context, filter season.Filter) ([]season.Season, error) {
	return s.seasons.list(func(se season.Season) bool {
		if filter.TeamID != 0 && se.TeamID != filter.TeamID {
			return false
		}
		return !filter.ActiveOnly || se.IsActive
	}, filter.Limit), nil
}

func (s *Store) UpdateSeason(_ context.Context, id int64, patch season.Patch) (season.Season, bool, error) {
	return s.seasons.update(id, func(se *season.Season) error {
		patch.Apply(se)
		se.StartDate, se.EndDate = se.StartDate.UTC(), se.EndDate.UTC()
		return se.Validate()
	}, nil)
}

// ActivateSeason deactivates the team's other seasons, then activates id.
func (s *Store) ActivateSeason(_ context.Context, id int64) (season.Season, bool, error) {
	s.structure.Lock()
	defer s.structure.Unlock()

	target, ok := s.seasons.get(id)
	if !ok {
		return season.Season{}, false, nil
	}

	for _, other := range s.seasons.list(func(se season.Season) bool {
		return se.TeamID == target.TeamID && se.ID != id && se.IsActive
	}, 0) {
		if _, _, err := s.seasons.update(other.ID, func(se *season.Season) error {
			se.IsActive = false
			return nil
		}, nil); err != nil {
			return season.Season{}, true, err
		}
	}

	return s.seasons.update(id, func(se *season.Season) error {
		se.IsActive = true
		return nil
	}, nil)
}

// DeleteSeason refuses with false while a classification row points at the
// season; matches of the season are detached, not deleted.
func (s *Store) DeleteSeason(ctx context.Context, id int64) (bool, error) {
	s.structure.Lock()
	defer s.structure.Unlock()

	if !s.seasons.exists(id) {
		return false, nil
	}
	if err := s.checkRestricted(store.FamilySeason, []int64{id}); err != nil {
		var restricted *restrictedError
		if errors.As(err, &restricted) {
			s.logger.InfoContext(ctx, "season delete refused", "season_id", id, "reason", restricted.Error())
			return false, nil
		}
		return false, err
	}
	removed, err := s.deleteCascade(ctx, store.FamilySeason, id)
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

// requireTeamSeason fails when seasonID is set and the season is missing or
// owned by a team other than teamID.
func (s *Store) requireTeamSeason(teamID int64, seasonID *int64) error {
	if seasonID == nil {
		return nil
	}
	se, ok := s.seasons.get(*seasonID)
	if !ok {
		return storeerr.MissingReference("season_id")
	}
	if se.TeamID != teamID {
		return storeerr.Reference("season_id", "season belongs to another team")
	}
	return nil
}
