package announcement

import "context"

type Repository interface {
	CreateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
	GetAnnouncement(ctx context.Context, id int64) (Announcement, bool, error)
	ListAnnouncements(ctx context.Context, filter Filter) ([]Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, patch Patch) (Announcement, bool, error)
	DeleteAnnouncement(ctx context.Context, id int64) (bool, error)
}
