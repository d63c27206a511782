package event

import "context"

type Repository interface {
	CreateEvent(ctx context.Context, e Event) (Event, error)
	GetEvent(ctx context.Context, id int64) (Event, bool, error)
	ListEvents(ctx context.Context, filter Filter) ([]Event, error)
	UpdateEvent(ctx context.Context, id int64, patch Patch) (Event, bool, error)
	// DeleteEvent also removes the event's attendance rows.
	DeleteEvent(ctx context.Context, id int64) (bool, error)
}

type AttendanceRepository interface {
	CreateAttendance(ctx context.Context, a Attendance) (Attendance, error)
	GetAttendance(ctx context.Context, id int64) (Attendance, bool, error)
	GetAttendanceByUser(ctx context.Context, eventID, userID int64) (Attendance, bool, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
	UpdateAttendance(ctx context.Context, id int64, patch AttendancePatch) (Attendance, bool, error)
	// SetAttendance inserts or replaces the (event, user) row.
	SetAttendance(ctx context.Context, a Attendance) (Attendance, error)
	DeleteAttendance(ctx context.Context, id int64) (bool, error)
}
