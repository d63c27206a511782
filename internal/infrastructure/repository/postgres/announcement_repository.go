package postgres

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/announcement"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

type AnnouncementRepository struct {
	c *conn
}

func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	a.Title = strings.TrimSpace(a.Title)
	now := r.c.now()
	a.CreatedAt, a.UpdatedAt = now, now
	if err := a.Validate(); err != nil {
		return announcement.Announcement{}, err
	}
	return create(ctx, r.c, announcementMapping, "create announcement", a)
}

func (r *AnnouncementRepository) GetAnnouncement(ctx context.Context, id int64) (announcement.Announcement, bool, error) {
	return get(ctx, r.c, announcementMapping, "get announcement", qb.Eq("id", id))
}

func (r *AnnouncementRepository) ListAnnouncements(ctx context.Context, filter announcement.Filter) ([]announcement.Announcement, error) {
	var conds []qb.Condition
	if filter.TeamID != 0 {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	return list(ctx, r.c, announcementMapping, "list announcements", filter.Limit, conds...)
}

func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, id int64, patch announcement.Patch) (announcement.Announcement, bool, error) {
	return update(ctx, r.c, announcementMapping, "update announcement", id, func(a *announcement.Announcement) error {
		patch.Apply(a)
		a.UpdatedAt = r.c.now()
		return a.Validate()
	})
}

func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, announcementMapping.table, "delete announcement", qb.Eq("id", id))
}
