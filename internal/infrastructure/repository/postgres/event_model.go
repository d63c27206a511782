package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/event"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

type eventTableModel struct {
	ID          int64         `db:"id,readonly"`
	TeamID      int64         `db:"team_id"`
	Title       string        `db:"title"`
	Type        string        `db:"type"`
	Description string        `db:"description"`
	Location    string        `db:"location"`
	StartsAt    time.Time     `db:"starts_at"`
	EndsAt      time.Time     `db:"ends_at"`
	CreatedBy   sql.NullInt64 `db:"created_by"`
	CreatedAt   time.Time     `db:"created_at,insertonly"`
}

var eventMapping = mapping[eventTableModel, event.Event]{
	table: string(store.FamilyEvent),
	order: []string{"starts_at", "id"},
	toDomain: func(row eventTableModel) event.Event {
		return event.Event{
			ID:          row.ID,
			TeamID:      row.TeamID,
			Title:       row.Title,
			Type:        event.Type(row.Type),
			Description: row.Description,
			Location:    row.Location,
			StartsAt:    row.StartsAt.UTC(),
			EndsAt:      row.EndsAt.UTC(),
			CreatedBy:   nullInt64Ptr(row.CreatedBy),
			CreatedAt:   row.CreatedAt.UTC(),
		}
	},
	toRow: func(e event.Event) eventTableModel {
		return eventTableModel{
			ID:          e.ID,
			TeamID:      e.TeamID,
			Title:       e.Title,
			Type:        string(e.Type),
			Description: e.Description,
			Location:    e.Location,
			StartsAt:    e.StartsAt,
			EndsAt:      e.EndsAt,
			CreatedBy:   nullableInt64(e.CreatedBy),
			CreatedAt:   e.CreatedAt,
		}
	},
}

type attendanceTableModel struct {
	ID        int64     `db:"id,readonly"`
	EventID   int64     `db:"event_id"`
	UserID    int64     `db:"user_id"`
	Status    string    `db:"status"`
	Note      string    `db:"note"`
	UpdatedAt time.Time `db:"updated_at"`
}

var attendanceMapping = mapping[attendanceTableModel, event.Attendance]{
	table: string(store.FamilyAttendance),
	toDomain: func(row attendanceTableModel) event.Attendance {
		return event.Attendance{
			ID:        row.ID,
			EventID:   row.EventID,
			UserID:    row.UserID,
			Status:    event.AttendanceStatus(row.Status),
			Note:      row.Note,
			UpdatedAt: row.UpdatedAt.UTC(),
		}
	},
	toRow: func(a event.Attendance) attendanceTableModel {
		return attendanceTableModel{
			ID:        a.ID,
			EventID:   a.EventID,
			UserID:    a.UserID,
			Status:    string(a.Status),
			Note:      a.Note,
			UpdatedAt: a.UpdatedAt,
		}
	},
}
