package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/event"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

func eventSchema() schema[event.Event] {
	return schema[event.Event]{
		id:    func(e event.Event) int64 { return e.ID },
		setID: func(e *event.Event, id int64) { e.ID = id },
		clone: func(e event.Event) event.Event {
			e.CreatedBy = cloneID(e.CreatedBy)
			return e
		},
		less: func(a, b event.Event) bool {
			if !a.StartsAt.Equal(b.StartsAt) {
				return a.StartsAt.Before(b.StartsAt)
			}
			return a.ID < b.ID
		},
		fks: map[string]foreignKey[event.Event]{
			"team_id": {get: func(e event.Event) (int64, bool) { return refOf(e.TeamID) }},
			"created_by": {
				get:   func(e event.Event) (int64, bool) { return optRef(e.CreatedBy) },
				clear: func(e *event.Event) { e.CreatedBy = nil },
			},
		},
	}
}

func (s *Store) CreateEvent(_ context.Context, e event.Event) (event.Event, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if e.Type == "" {
		e.Type = event.TypeTraining
	}
	e.Title = strings.TrimSpace(e.Title)
	e.StartsAt, e.EndsAt = e.StartsAt.UTC(), e.EndsAt.UTC()
	e.CreatedAt = s.now()
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := firstError(
		s.requireRef("team_id", store.FamilyTeam, e.TeamID),
		s.requireOptRef("created_by", store.FamilyUser, e.CreatedBy),
	); err != nil {
		return event.Event{}, err
	}
	return s.events.insert(e, nil)
}

func (s *Store) GetEvent(_ context.Context, id int64) (event.Event, bool, error) {
	e, ok := s.events.get(id)
	return e, ok, nil
}

func (s *Store) ListEvents(_ context.Context, filter event.Filter) ([]event.Event, error) {
	return s.events.list(func(e event.Event) bool {
		if filter.TeamID != 0 && e.TeamID != filter.TeamID {
			return false
		}
		if filter.From != nil && e.StartsAt.Before(*filter.From) {
			return false
		}
		if filter.To != nil && e.StartsAt.After(*filter.To) {
			return false
		}
		return true
	}, filter.Limit), nil
}

func (s *Store) UpdateEvent(_ context.Context, id int64, patch event.Patch) (event.Event, bool, error) {
	return s.events.update(id, func(e *event.Event) error {
		patch.Apply(e)
		e.StartsAt, e.EndsAt = e.StartsAt.UTC(), e.EndsAt.UTC()
		return e.Validate()
	}, nil)
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyEvent, id)
}

func attendanceSchema() schema[event.Attendance] {
	return schema[event.Attendance]{
		id:    func(a event.Attendance) int64 { return a.ID },
		setID: func(a *event.Attendance, id int64) { a.ID = id },
		fks: map[string]foreignKey[event.Attendance]{
			"event_id": {get: func(a event.Attendance) (int64, bool) { return refOf(a.EventID) }},
			"user_id":  {get: func(a event.Attendance) (int64, bool) { return refOf(a.UserID) }},
		},
	}
}

func attendanceConflict(candidate, existing event.Attendance) error {
	if existing.EventID == candidate.EventID && existing.UserID == candidate.UserID {
		return storeerr.Conflict("attendance", "attendance already exists")
	}
	return nil
}

func (s *Store) prepareAttendance(a *event.Attendance) error {
	a.UpdatedAt = s.now()
	if err := a.Validate(); err != nil {
		return err
	}
	return firstError(
		s.requireRef("event_id", store.FamilyEvent, a.EventID),
		s.requireRef("user_id", store.FamilyUser, a.UserID),
	)
}

func (s *Store) CreateAttendance(_ context.Context, a event.Attendance) (event.Attendance, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if err := s.prepareAttendance(&a); err != nil {
		return event.Attendance{}, err
	}
	return s.attendance.insert(a, attendanceConflict)
}

// SetAttendance records the user's answer for the event, replacing any
// earlier one.
func (s *Store) SetAttendance(_ context.Context, a event.Attendance) (event.Attendance, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if err := s.prepareAttendance(&a); err != nil {
		return event.Attendance{}, err
	}
	return s.attendance.upsert(func(existing event.Attendance) bool {
		return existing.EventID == a.EventID && existing.UserID == a.UserID
	}, func(*event.Attendance) (event.Attendance, error) {
		return a, nil
	})
}

func (s *Store) GetAttendance(_ context.Context, id int64) (event.Attendance, bool, error) {
	a, ok := s.attendance.get(id)
	return a, ok, nil
}

func (s *Store) GetAttendanceByUser(_ context.Context, eventID, userID int64) (event.Attendance, bool, error) {
	a, ok := s.attendance.find(func(a event.Attendance) bool {
		return a.EventID == eventID && a.UserID == userID
	})
	return a, ok, nil
}

func (s *Store) ListAttendance(_ context.Context, filter event.AttendanceFilter) ([]event.Attendance, error) {
	return s.attendance.list(func(a event.Attendance) bool {
		if filter.EventID != 0 && a.EventID != filter.EventID {
			return false
		}
		if filter.UserID != 0 && a.UserID != filter.UserID {
			return false
		}
		return filter.Status == "" || a.Status == filter.Status
	}, filter.Limit), nil
}

func (s *Store) UpdateAttendance(_ context.Context, id int64, patch event.AttendancePatch) (event.Attendance, bool, error) {
	return s.attendance.update(id, func(a *event.Attendance) error {
		patch.Apply(a)
		a.UpdatedAt = s.now()
		return a.Validate()
	}, attendanceConflict)
}

func (s *Store) DeleteAttendance(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyAttendance, id)
}
