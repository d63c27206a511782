package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/match"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

func matchOf(filter match.DetailFilter, matchID int64) bool {
	return filter.MatchID == 0 || matchID == filter.MatchID
}

func substitutionSchema() schema[match.Substitution] {
	return schema[match.Substitution]{
		id:    func(v match.Substitution) int64 { return v.ID },
		setID: func(v *match.Substitution, id int64) { v.ID = id },
		fks: map[string]foreignKey[match.Substitution]{
			"match_id":      {get: func(v match.Substitution) (int64, bool) { return refOf(v.MatchID) }},
			"player_in_id":  {get: func(v match.Substitution) (int64, bool) { return refOf(v.PlayerInID) }},
			"player_out_id": {get: func(v match.Substitution) (int64, bool) { return refOf(v.PlayerOutID) }},
		},
	}
}

func (s *Store) CreateSubstitution(_ context.Context, v match.Substitution) (match.Substitution, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if err := v.Validate(); err != nil {
		return match.Substitution{}, err
	}
	if err := firstError(
		s.requireRef("match_id", store.FamilyMatch, v.MatchID),
		s.requireRef("player_in_id", store.FamilyTeamMember, v.PlayerInID),
		s.requireRef("player_out_id", store.FamilyTeamMember, v.PlayerOutID),
	); err != nil {
		return match.Substitution{}, err
	}
	return s.substitutions.insert(v, nil)
}

func (s *Store) GetSubstitution(_ context.Context, id int64) (match.Substitution, bool, error) {
	v, ok := s.substitutions.get(id)
	return v, ok, nil
}

func (s *Store) ListSubstitutions(_ context.Context, filter match.DetailFilter) ([]match.Substitution, error) {
	return s.substitutions.list(func(v match.Substitution) bool { return matchOf(filter, v.MatchID) }, filter.Limit), nil
}

func (s *Store) UpdateSubstitution(_ context.Context, id int64, patch match.SubstitutionPatch) (match.Substitution, bool, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	refErr := firstError(
		s.requireOptRef("player_in_id", store.FamilyTeamMember, patch.PlayerInID),
		s.requireOptRef("player_out_id", store.FamilyTeamMember, patch.PlayerOutID),
	)
	return updateChecked(s.substitutions, id, refErr, func(v *match.Substitution) error {
		patch.Apply(v)
		return v.Validate()
	}, nil)
}

func (s *Store) DeleteSubstitution(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilySubstitution, id)
}

func goalSchema() schema[match.Goal] {
	return schema[match.Goal]{
		id:    func(v match.Goal) int64 { return v.ID },
		setID: func(v *match.Goal, id int64) { v.ID = id },
		clone: func(v match.Goal) match.Goal {
			v.ScorerID = cloneID(v.ScorerID)
			v.AssistID = cloneID(v.AssistID)
			return v
		},
		fks: map[string]foreignKey[match.Goal]{
			"match_id": {get: func(v match.Goal) (int64, bool) { return refOf(v.MatchID) }},
			"scorer_id": {
				get:   func(v match.Goal) (int64, bool) { return optRef(v.ScorerID) },
				clear: func(v *match.Goal) { v.ScorerID = nil },
			},
			"assist_id": {
				get:   func(v match.Goal) (int64, bool) { return optRef(v.AssistID) },
				clear: func(v *match.Goal) { v.AssistID = nil },
			},
		},
	}
}

func (s *Store) CreateGoal(_ context.Context, v match.Goal) (match.Goal, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if err := v.Validate(); err != nil {
		return match.Goal{}, err
	}
	if err := firstError(
		s.requireRef("match_id", store.FamilyMatch, v.MatchID),
		s.requireOptRef("scorer_id", store.FamilyTeamMember, v.ScorerID),
		s.requireOptRef("assist_id", store.FamilyTeamMember, v.AssistID),
	); err != nil {
		return match.Goal{}, err
	}
	return s.goals.insert(v, nil)
}

func (s *Store) GetGoal(_ context.Context, id int64) (match.Goal, bool, error) {
	v, ok := s.goals.get(id)
	return v, ok, nil
}

func (s *Store) ListGoals(_ context.Context, filter match.DetailFilter) ([]match.Goal, error) {
	return s.goals.list(func(v match.Goal) bool { return matchOf(filter, v.MatchID) }, filter.Limit), nil
}

func (s *Store) UpdateGoal(_ context.Context, id int64, patch match.GoalPatch) (match.Goal, bool, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	refErr := firstError(
		s.requireOptRef("scorer_id", store.FamilyTeamMember, patch.ScorerID),
		s.requireOptRef("assist_id", store.FamilyTeamMember, patch.AssistID),
	)
	return updateChecked(s.goals, id, refErr, func(v *match.Goal) error {
		patch.Apply(v)
		return v.Validate()
	}, nil)
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyGoal, id)
}

func cardSchema() schema[match.Card] {
	return schema[match.Card]{
		id:    func(v match.Card) int64 { return v.ID },
		setID: func(v *match.Card, id int64) { v.ID = id },
		fks: map[string]foreignKey[match.Card]{
			"match_id":       {get: func(v match.Card) (int64, bool) { return refOf(v.MatchID) }},
			"team_member_id": {get: func(v match.Card) (int64, bool) { return refOf(v.TeamMemberID) }},
		},
	}
}

func (s *Store) CreateCard(_ context.Context, v match.Card) (match.Card, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if err := v.Validate(); err != nil {
		return match.Card{}, err
	}
	if err := firstError(
		s.requireRef("match_id", store.FamilyMatch, v.MatchID),
		s.requireRef("team_member_id", store.FamilyTeamMember, v.TeamMemberID),
	); err != nil {
		return match.Card{}, err
	}
	return s.cards.insert(v, nil)
}

func (s *Store) GetCard(_ context.Context, id int64) (match.Card, bool, error) {
	v, ok := s.cards.get(id)
	return v, ok, nil
}

func (s *Store) ListCards(_ context.Context, filter match.DetailFilter) ([]match.Card, error) {
	return s.cards.list(func(v match.Card) bool { return matchOf(filter, v.MatchID) }, filter.Limit), nil
}

func (s *Store) UpdateCard(_ context.Context, id int64, patch match.CardPatch) (match.Card, bool, error) {
	return s.cards.update(id, func(v *match.Card) error {
		patch.Apply(v)
		return v.Validate()
	}, nil)
}

func (s *Store) DeleteCard(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyCard, id)
}

func photoSchema() schema[match.Photo] {
	return schema[match.Photo]{
		id:    func(v match.Photo) int64 { return v.ID },
		setID: func(v *match.Photo, id int64) { v.ID = id },
		clone: func(v match.Photo) match.Photo {
			v.UploadedBy = cloneID(v.UploadedBy)
			return v
		},
		fks: map[string]foreignKey[match.Photo]{
			"match_id": {get: func(v match.Photo) (int64, bool) { return refOf(v.MatchID) }},
			"uploaded_by": {
				get:   func(v match.Photo) (int64, bool) { return optRef(v.UploadedBy) },
				clear: func(v *match.Photo) { v.UploadedBy = nil },
			},
		},
	}
}

func (s *Store) CreatePhoto(_ context.Context, v match.Photo) (match.Photo, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	v.URL = strings.TrimSpace(v.URL)
	v.CreatedAt = s.now()
	if err := v.Validate(); err != nil {
		return match.Photo{}, err
	}
	if err := firstError(
		s.requireRef("match_id", store.FamilyMatch, v.MatchID),
		s.requireOptRef("uploaded_by", store.FamilyUser, v.UploadedBy),
	); err != nil {
		return match.Photo{}, err
	}
	return s.photos.insert(v, nil)
}

func (s *Store) GetPhoto(_ context.Context, id int64) (match.Photo, bool, error) {
	v, ok := s.photos.get(id)
	return v, ok, nil
}

func (s *Store) ListPhotos(_ context.Context, filter match.DetailFilter) ([]match.Photo, error) {
	return s.photos.list(func(v match.Photo) bool { return matchOf(filter, v.MatchID) }, filter.Limit), nil
}

func (s *Store) UpdatePhoto(_ context.Context, id int64, patch match.PhotoPatch) (match.Photo, bool, error) {
	return s.photos.update(id, func(v *match.Photo) error {
		patch.Apply(v)
		return v.Validate()
	}, nil)
}

func (s *Store) DeletePhoto(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyPhoto, id)
}
