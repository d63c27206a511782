package season

import "context"

type Repository interface {
	CreateSeason(ctx context.Context, s Season) (Season, error)
	GetSeason(ctx context.Context, id int64) (Season, bool, error)
	ListSeasons(ctx context.Context, filter Filter) ([]Season, error)
	UpdateSeason(ctx context.Context, id int64, patch Patch) (Season, bool, error)
	// ActivateSeason marks the season active and every other season of the
	// same team inactive.
	ActivateSeason(ctx context.Context, id int64) (Season, bool, error)
	// DeleteSeason refuses, returning false, while any league classification
	// row still references the season. Matches in the season are detached.
	DeleteSeason(ctx context.Context, id int64) (bool, error)
}
