package match

import "context"

type Repository interface {
	// CreateMatch defaults Status to scheduled.
	CreateMatch(ctx context.Context, m Match) (Match, error)
	GetMatch(ctx context.Context, id int64) (Match, bool, error)
	ListMatches(ctx context.Context, filter Filter) ([]Match, error)
	UpdateMatch(ctx context.Context, id int64, patch Patch) (Match, bool, error)
	// DeleteMatch also removes the lineup, substitutions, goals, cards,
	// photos and player stats of the match.
	DeleteMatch(ctx context.Context, id int64) (bool, error)
}

// DetailRepository covers the per-match records.
type DetailRepository interface {
	CreateSubstitution(ctx context.Context, s Substitution) (Substitution, error)
	GetSubstitution(ctx context.Context, id int64) (Substitution, bool, error)
	ListSubstitutions(ctx context.Context, filter DetailFilter) ([]Substitution, error)
	UpdateSubstitution(ctx context.Context, id int64, patch SubstitutionPatch) (Substitution, bool, error)
	DeleteSubstitution(ctx context.Context, id int64) (bool, error)

	CreateGoal(ctx context.Context, g Goal) (Goal, error)
	GetGoal(ctx context.Context, id int64) (Goal, bool, error)
	ListGoals(ctx context.Context, filter DetailFilter) ([]Goal, error)
	UpdateGoal(ctx context.Context, id int64, patch GoalPatch) (Goal, bool, error)
	DeleteGoal(ctx context.Context, id int64) (bool, error)

	CreateCard(ctx context.Context, c Card) (Card, error)
	GetCard(ctx context.Context, id int64) (Card, bool, error)
	ListCards(ctx context.Context, filter DetailFilter) ([]Card, error)
	UpdateCard(ctx context.Context, id int64, patch CardPatch) (Card, bool, error)
	DeleteCard(ctx context.Context, id int64) (bool, error)

	CreatePhoto(ctx context.Context, p Photo) (Photo, error)
	GetPhoto(ctx context.Context, id int64) (Photo, bool, error)
	ListPhotos(ctx context.Context, filter DetailFilter) ([]Photo, error)
	UpdatePhoto(ctx context.Context, id int64, patch PhotoPatch) (Photo, bool, error)
	DeletePhoto(ctx context.Context, id int64) (bool, error)
}
