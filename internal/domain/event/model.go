package event

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

type Type string

const (
	TypeTraining Type = "training"
	TypeMeeting  Type = "meeting"
	TypeSocial   Type = "social"
	TypeOther    Type = "other"
)

type Event struct {
	ID          int64     `json:"id"`
	TeamID      int64     `json:"team_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Type        Type      `json:"type" validate:"required,oneof=training meeting social other"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required,gtefield=StartsAt"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e Event) Validate() error {
	return validation.Struct(e)
}

type Patch struct {
	Title       *string
	Type        *Type
	Description *string
	Location    *string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

func (p Patch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.StartsAt != nil {
		e.StartsAt = *p.StartsAt
	}
	if p.EndsAt != nil {
		e.EndsAt = *p.EndsAt
	}
}

// Filter lists events by start time, then id. From/To bound StartsAt.
type Filter struct {
	TeamID int64
	From   *time.Time
	To     *time.Time
	Limit  int
}

type AttendanceStatus string

const (
	AttendanceAttending    AttendanceStatus = "attending"
	AttendanceNotAttending AttendanceStatus = "not_attending"
	AttendanceMaybe        AttendanceStatus = "maybe"
)

// Attendance is unique per (event, user).
type Attendance struct {
	ID        int64            `json:"id"`
	EventID   int64            `json:"event_id" validate:"required"`
	UserID    int64            `json:"user_id" validate:"required"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=attending not_attending maybe"`
	Note      string           `json:"note"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (a Attendance) Validate() error {
	return validation.Struct(a)
}

type AttendancePatch struct {
	Status *AttendanceStatus
	Note   *string
}

func (p AttendancePatch) Apply(a *Attendance) {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Note != nil {
		a.Note = *p.Note
	}
}

type AttendanceFilter struct {
	EventID int64
	UserID  int64
	Status  AttendanceStatus
	Limit   int
}
