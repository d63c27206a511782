package classification

import "context"

type Repository interface {
	CreateClassification(ctx context.Context, c Classification) (Classification, error)
	GetClassification(ctx context.Context, id int64) (Classification, bool, error)
	ListClassifications(ctx context.Context, filter Filter) ([]Classification, error)
	UpdateClassification(ctx context.Context, id int64, patch Patch) (Classification, bool, error)
	DeleteClassification(ctx context.Context, id int64) (bool, error)
}
