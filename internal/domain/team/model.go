package team

import (
	"strings"
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/joincode"
	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

// Team owns members, matches, events, seasons and the rest of the club data.
type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=120"`
	Sport       string    `json:"sport"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	JoinCode    string    `json:"join_code" validate:"required,joincode"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t Team) Validate() error {
	return validation.Struct(t)
}

type Patch struct {
	Name        *string
	Sport       *string
	Description *string
	LogoURL     *string
}

func (p Patch) Apply(t *Team) {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.Sport != nil {
		t.Sport = *p.Sport
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.LogoURL != nil {
		t.LogoURL = *p.LogoURL
	}
}

type Filter struct {
	// MemberUserID restricts the listing to teams the user belongs to.
	MemberUserID int64
	CreatedBy    int64
	Limit        int
}

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoach       Role = "coach"
	RolePlayer      Role = "player"
	RoleColaborador Role = "colaborador"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RolePlayer, RoleColaborador:
		return true
	default:
		return false
	}
}

// Member links a user to a team. UserID is nil for a placeholder member that
// is claimed later; such members are identified by DisplayName only.
type Member struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"team_id" validate:"required"`
	UserID       *int64    `json:"user_id"`
	DisplayName  string    `json:"display_name" validate:"required_without=UserID"`
	Role         Role      `json:"role" validate:"required,oneof=admin coach player colaborador"`
	JerseyNumber *int      `json:"jersey_number" validate:"omitempty,gte=0,lte=999"`
	Position     string    `json:"position"`
	JoinedAt     time.Time `json:"joined_at"`
}

func (m Member) Validate() error {
	return validation.Struct(m)
}

func (m Member) Claimed() bool {
	return m.UserID != nil
}

type MemberPatch struct {
	// UserID links a placeholder member to an account.
	UserID       *int64
	DisplayName  *string
	Role         *Role
	JerseyNumber *int
	Position     *string
}

func (p MemberPatch) Apply(m *Member) {
	if p.UserID != nil {
		id := *p.UserID
		m.UserID = &id
	}
	if p.DisplayName != nil {
		m.DisplayName = strings.TrimSpace(*p.DisplayName)
	}
	if p.Role != nil {
		m.Role = *p.Role
	}
	if p.JerseyNumber != nil {
		n := *p.JerseyNumber
		m.JerseyNumber = &n
	}
	if p.Position != nil {
		m.Position = *p.Position
	}
}

type MemberFilter struct {
	TeamID int64
	UserID int64
	Role   Role
	Limit  int
}

func NormalizeJoinCode(code string) string {
	return joincode.Normalize(code)
}
