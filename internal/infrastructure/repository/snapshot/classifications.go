package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/classification"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

func classificationSchema() schema[classification.Classification] {
	return schema[classification.Classification]{
		id:    func(c classification.Classification) int64 { return c.ID },
		setID: func(c *classification.Classification, id int64) { c.ID = id },
		clone: func(c classification.Classification) classification.Classification {
			c.SeasonID = cloneID(c.SeasonID)
			return c
		},
		less: func(a, b classification.Classification) bool {
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.ID < b.ID
		},
		fks: map[string]foreignKey[classification.Classification]{
			"team_id":   {get: func(c classification.Classification) (int64, bool) { return refOf(c.TeamID) }},
			"season_id": {get: func(c classification.Classification) (int64, bool) { return optRef(c.SeasonID) }},
		},
	}
}

func classificationConflict(candidate, existing classification.Classification) error {
	if candidate.SameKey(existing) {
		return storeerr.Conflict("external_team_name", "classification already exists")
	}
	return nil
}

func (s *Store) CreateClassification(_ context.Context, c classification.Classification) (classification.Classification, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	c.ExternalTeamName = strings.TrimSpace(c.ExternalTeamName)
	c.UpdatedAt = s.now()
	if err := c.Validate(); err != nil {
		return classification.Classification{}, err
	}
	if err := firstError(
		s.requireRef("team_id", store.FamilyTeam, c.TeamID),
		s.requireTeamSeason(c.TeamID, c.SeasonID),
	); err != nil {
		return classification.Classification{}, err
	}
	return s.classifications.insert(c, classificationConflict)
}

func (s *Store) GetClassification(_ context.Context, id int64) (classification.Classification, bool, error) {
	c, ok := s.classifications.get(id)
	return c, ok, nil
}

func (s *Store) ListClassifications(_ context.Context, filter classification.Filter) ([]classification.Classification, error) {
	return s.classifications.list(func(c classification.Classification) bool {
		if filter.TeamID != 0 && c.TeamID != filter.TeamID {
			return false
		}
		if filter.SeasonID != nil && (c.SeasonID == nil || *c.SeasonID != *filter.SeasonID) {
			return false
		}
		return true
	}, filter.Limit), nil
}

func (s *Store) UpdateClassification(_ context.Context, id int64, patch classification.Patch) (classification.Classification, bool, error) {
	return s.classifications.update(id, func(c *classification.Classification) error {
		patch.Apply(c)
		c.ExternalTeamName = strings.TrimSpace(c.ExternalTeamName)
		c.UpdatedAt = s.now()
		return c.Validate()
	}, classificationConflict)
}

func (s *Store) DeleteClassification(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyClassification, id)
}
