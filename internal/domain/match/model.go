package match

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
)

// Match belongs to one team and optionally one season.
type Match struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"team_id" validate:"required"`
	SeasonID     *int64    `json:"season_id"`
	Opponent     string    `json:"opponent" validate:"required,max=120"`
	Location     string    `json:"location"`
	IsHome       bool      `json:"is_home"`
	ScheduledAt  time.Time `json:"scheduled_at" validate:"required"`
	Status       Status    `json:"status" validate:"required,oneof=scheduled completed"`
	GoalsFor     *int      `json:"goals_for" validate:"omitempty,gte=0"`
	GoalsAgainst *int      `json:"goals_against" validate:"omitempty,gte=0"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m Match) Validate() error {
	return validation.Struct(m)
}

type Patch struct {
	SeasonID     *int64
	Opponent     *string
	Location     *string
	IsHome       *bool
	ScheduledAt  *time.Time
	Status       *Status
	GoalsFor     *int
	GoalsAgainst *int
	Notes        *string
}

func (p Patch) Apply(m *Match) {
	if p.SeasonID != nil {
		id := *p.SeasonID
		m.SeasonID = &id
	}
	if p.Opponent != nil {
		m.Opponent = *p.Opponent
	}
	if p.Location != nil {
		m.Location = *p.Location
	}
	if p.IsHome != nil {
		m.IsHome = *p.IsHome
	}
	if p.ScheduledAt != nil {
		m.ScheduledAt = *p.ScheduledAt
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.GoalsFor != nil {
		n := *p.GoalsFor
		m.GoalsFor = &n
	}
	if p.GoalsAgainst != nil {
		n := *p.GoalsAgainst
		m.GoalsAgainst = &n
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
}

// Filter lists matches by kickoff, then id.
type Filter struct {
	TeamID   int64
	SeasonID *int64
	Status   Status
	Limit    int
}

// Substitution records a player change; both ids are team member ids.
type Substitution struct {
	ID          int64 `json:"id"`
	MatchID     int64 `json:"match_id" validate:"required"`
	PlayerInID  int64 `json:"player_in_id" validate:"required"`
	PlayerOutID int64 `json:"player_out_id" validate:"required"`
	Minute      int   `json:"minute" validate:"gte=0,lte=200"`
}

func (s Substitution) Validate() error {
	return validation.Struct(s)
}

type SubstitutionPatch struct {
	PlayerInID  *int64
	PlayerOutID *int64
	Minute      *int
}

func (p SubstitutionPatch) Apply(s *Substitution) {
	if p.PlayerInID != nil {
		s.PlayerInID = *p.PlayerInID
	}
	if p.PlayerOutID != nil {
		s.PlayerOutID = *p.PlayerOutID
	}
	if p.Minute != nil {
		s.Minute = *p.Minute
	}
}

// Goal keeps its row when the scorer or assister leaves the team; the
// reference is cleared instead.
type Goal struct {
	ID       int64  `json:"id"`
	MatchID  int64  `json:"match_id" validate:"required"`
	ScorerID *int64 `json:"scorer_id"`
	AssistID *int64 `json:"assist_id"`
	Minute   int    `json:"minute" validate:"gte=0,lte=200"`
	OwnGoal  bool   `json:"own_goal"`
}

func (g Goal) Validate() error {
	return validation.Struct(g)
}

type GoalPatch struct {
	ScorerID *int64
	AssistID *int64
	Minute   *int
	OwnGoal  *bool
}

func (p GoalPatch) Apply(g *Goal) {
	if p.ScorerID != nil {
		id := *p.ScorerID
		g.ScorerID = &id
	}
	if p.AssistID != nil {
		id := *p.AssistID
		g.AssistID = &id
	}
	if p.Minute != nil {
		g.Minute = *p.Minute
	}
	if p.OwnGoal != nil {
		g.OwnGoal = *p.OwnGoal
	}
}

type CardType string

const (
	CardYellow CardType = "yellow"
	CardRed    CardType = "red"
)

type Card struct {
	ID           int64    `json:"id"`
	MatchID      int64    `json:"match_id" validate:"required"`
	TeamMemberID int64    `json:"team_member_id" validate:"required"`
	Type         CardType `json:"type" validate:"required,oneof=yellow red"`
	Minute       int      `json:"minute" validate:"gte=0,lte=200"`
}

func (c Card) Validate() error {
	return validation.Struct(c)
}

type CardPatch struct {
	Type   *CardType
	Minute *int
}

func (p CardPatch) Apply(c *Card) {
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Minute != nil {
		c.Minute = *p.Minute
	}
}

type Photo struct {
	ID         int64     `json:"id"`
	MatchID    int64     `json:"match_id" validate:"required"`
	URL        string    `json:"url" validate:"required"`
	Caption    string    `json:"caption"`
	UploadedBy *int64    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p Photo) Validate() error {
	return validation.Struct(p)
}

type PhotoPatch struct {
	Caption *string
}

func (p PhotoPatch) Apply(ph *Photo) {
	if p.Caption != nil {
		ph.Caption = *p.Caption
	}
}

// DetailFilter lists substitutions, goals, cards or photos of one match by id.
type DetailFilter struct {
	MatchID int64
	Limit   int
}
