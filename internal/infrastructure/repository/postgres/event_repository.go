package postgres

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/event"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

const attendanceUpsert = `ON CONFLICT (event_id, user_id) DO UPDATE SET
    status = EXCLUDED.status,
    note = EXCLUDED.note,
    updated_at = EXCLUDED.updated_at`

type EventRepository struct {
	c *conn
}

func (r *EventRepository) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	if e.Type == "" {
		e.Type = event.TypeTraining
	}
	e.Title = strings.TrimSpace(e.Title)
	e.StartsAt, e.EndsAt = e.StartsAt.UTC(), e.EndsAt.UTC()
	e.CreatedAt = r.c.now()
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	return create(ctx, r.c, eventMapping, "create event", e)
}

func (r *EventRepository) GetEvent(ctx context.Context, id int64) (event.Event, bool, error) {
	return get(ctx, r.c, eventMapping, "get event", qb.Eq("id", id))
}

func (r *EventRepository) ListEvents(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	var conds []qb.Condition
	if filter.TeamID != 0 {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	if filter.From != nil {
		conds = append(conds, qb.Gte("starts_at", filter.From.UTC()))
	}
	if filter.To != nil {
		conds = append(conds, qb.Lte("starts_at", filter.To.UTC()))
	}
	return list(ctx, r.c, eventMapping, "list events", filter.Limit, conds...)
}

func (r *EventRepository) UpdateEvent(ctx context.Context, id int64, patch event.Patch) (event.Event, bool, error) {
	return update(ctx, r.c, eventMapping, "update event", id, func(e *event.Event) error {
		patch.Apply(e)
		e.StartsAt, e.EndsAt = e.StartsAt.UTC(), e.EndsAt.UTC()
		return e.Validate()
	})
}

// DeleteEvent removes the event and, through the schema, its attendance.
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, eventMapping.table, "delete event", qb.Eq("id", id))
}

type AttendanceRepository struct {
	c *conn
}

func (r *AttendanceRepository) CreateAttendance(ctx context.Context, a event.Attendance) (event.Attendance, error) {
	a.UpdatedAt = r.c.now()
	if err := a.Validate(); err != nil {
		return event.Attendance{}, err
	}
	return create(ctx, r.c, attendanceMapping, "create attendance", a)
}

// SetAttendance records the user's answer for the event, replacing any
// earlier one and keeping its id.
func (r *AttendanceRepository) SetAttendance(ctx context.Context, a event.Attendance) (event.Attendance, error) {
	a.UpdatedAt = r.c.now()
	if err := a.Validate(); err != nil {
		return event.Attendance{}, err
	}
	var out event.Attendance
	err := r.c.run(ctx, "set attendance", func(ctx context.Context) error {
		var err error
		out, err = insertReturning(ctx, r.c.db, attendanceMapping, a, attendanceUpsert)
		return err
	})
	return out, err
}

func (r *AttendanceRepository) GetAttendance(ctx context.Context, id int64) (event.Attendance, bool, error) {
	return get(ctx, r.c, attendanceMapping, "get attendance", qb.Eq("id", id))
}

func (r *AttendanceRepository) GetAttendanceByUser(ctx context.Context, eventID, userID int64) (event.Attendance, bool, error) {
	return get(ctx, r.c, attendanceMapping, "get attendance by user", qb.Eq("event_id", eventID), qb.Eq("user_id", userID))
}

func (r *AttendanceRepository) ListAttendance(ctx context.Context, filter event.AttendanceFilter) ([]event.Attendance, error) {
	var conds []qb.Condition
	if filter.EventID != 0 {
		conds = append(conds, qb.Eq("event_id", filter.EventID))
	}
	if filter.UserID != 0 {
		conds = append(conds, qb.Eq("user_id", filter.UserID))
	}
	if filter.Status != "" {
		conds = append(conds, qb.Eq("status", string(filter.Status)))
	}
	return list(ctx, r.c, attendanceMapping, "list attendance", filter.Limit, conds...)
}

func (r *AttendanceRepository) UpdateAttendance(ctx context.Context, id int64, patch event.AttendancePatch) (event.Attendance, bool, error) {
	return update(ctx, r.c, attendanceMapping, "update attendance", id, func(a *event.Attendance) error {
		patch.Apply(a)
		a.UpdatedAt = r.c.now()
		return a.Validate()
	})
}

func (r *AttendanceRepository) DeleteAttendance(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, attendanceMapping.table, "delete attendance", qb.Eq("id", id))
}
