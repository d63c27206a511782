package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/announcement"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

func announcementSchema() schema[announcement.Announcement] {
	return schema[announcement.Announcement]{
		id:    func(a announcement.Announcement) int64 { return a.ID },
		setID: func(a *announcement.Announcement, id int64) { a.ID = id },
		clone: func(a announcement.Announcement) announcement.Announcement {
			a.AuthorID = cloneID(a.AuthorID)
			return a
		},
		// pinned first, newest first
		less: func(a, b announcement.Announcement) bool {
			if a.Pinned != b.Pinned {
				return a.Pinned
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		},
		fks: map[string]foreignKey[announcement.Announcement]{
			"team_id": {get: func(a announcement.Announcement) (int64, bool) { return refOf(a.TeamID) }},
			"author_id": {
				get:   func(a announcement.Announcement) (int64, bool) { return optRef(a.AuthorID) },
				clear: func(a *announcement.Announcement) { a.AuthorID = nil },
			},
		},
	}
}

func (s *Store) CreateAnnouncement(_ context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	a.Title = strings.TrimSpace(a.Title)
	now := s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	if err := a.Validate(); err != nil {
		return announcement.Announcement{}, err
	}
	if err := firstError(
		s.requireRef("team_id", store.FamilyTeam, a.TeamID),
		s.requireOptRef("author_id", store.FamilyUser, a.AuthorID),
	); err != nil {
		return announcement.Announcement{}, err
	}
	return s.announcements.insert(a, nil)
}

func (s *Store) GetAnnouncement(_ context.Context, id int64) (announcement.Announcement, bool, error) {
	a, ok := s.announcements.get(id)
	return a, ok, nil
}

func (s *Store) ListAnnouncements(_ context.Context, filter announcement.Filter) ([]announcement.Announcement, error) {
	return s.announcements.list(func(a announcement.Announcement) bool {
		return filter.TeamID == 0 || a.TeamID == filter.TeamID
	}, filter.Limit), nil
}

func (s *Store) UpdateAnnouncement(_ context.Context, id int64, patch announcement.Patch) (announcement.Announcement, bool, error) {
	return s.announcements.update(id, func(a *announcement.Announcement) error {
		patch.Apply(a)
		a.UpdatedAt = s.now()
		return a.Validate()
	}, nil)
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyAnnouncement, id)
}
