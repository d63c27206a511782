package invitation

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/team"
	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
)

// Invitation is unique per (team, email).
type Invitation struct {
	ID        int64      `json:"id"`
	TeamID    int64      `json:"team_id" validate:"required"`
	Email     string     `json:"email" validate:"required,email"`
	Role      team.Role  `json:"role" validate:"required,oneof=admin coach player colaborador"`
	Token     string     `json:"token" validate:"required"`
	Status    Status     `json:"status" validate:"required,oneof=pending accepted revoked"`
	InvitedBy *int64     `json:"invited_by"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (i Invitation) Validate() error {
	return validation.Struct(i)
}

func (i Invitation) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !i.ExpiresAt.After(now)
}

type Patch struct {
	Role      *team.Role
	Status    *Status
	ExpiresAt *time.Time
}

func (p Patch) Apply(i *Invitation) {
	if p.Role != nil {
		i.Role = *p.Role
	}
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.ExpiresAt != nil {
		at := *p.ExpiresAt
		i.ExpiresAt = &at
	}
}

type Filter struct {
	TeamID int64
	Email  string
	Status Status
	Limit  int
}
