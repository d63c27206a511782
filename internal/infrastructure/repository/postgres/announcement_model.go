package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/announcement"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

type announcementTableModel struct {
	ID        int64         `db:"id,readonly"`
	TeamID    int64         `db:"team_id"`
	AuthorID  sql.NullInt64 `db:"author_id"`
	Title     string        `db:"title"`
	Body      string        `db:"body"`
	Pinned    bool          `db:"pinned"`
	CreatedAt time.Time     `db:"created_at,insertonly"`
	UpdatedAt time.Time     `db:"updated_at"`
}

var announcementMapping = mapping[announcementTableModel, announcement.Announcement]{
	table: string(store.FamilyAnnouncement),
	order: []string{"pinned DESC", "created_at DESC", "id DESC"},
	toDomain: func(row announcementTableModel) announcement.Announcement {
		return announcement.Announcement{
			ID:        row.ID,
			TeamID:    row.TeamID,
			AuthorID:  nullInt64Ptr(row.AuthorID),
			Title:     row.Title,
			Body:      row.Body,
			Pinned:    row.Pinned,
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.UpdatedAt.UTC(),
		}
	},
	toRow: func(a announcement.Announcement) announcementTableModel {
		return announcementTableModel{
			ID:        a.ID,
			TeamID:    a.TeamID,
			AuthorID:  nullableInt64(a.AuthorID),
			Title:     a.Title,
			Body:      a.Body,
			Pinned:    a.Pinned,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		}
	},
}
