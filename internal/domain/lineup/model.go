package lineup

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

// Slot places one team member on the pitch. X and Y are percentages of the
// pitch width and length.
type Slot struct {
	TeamMemberID int64   `json:"team_member_id"`
	Position     string  `json:"position"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
}

// TeamLineup is the team's default formation; at most one per team.
type TeamLineup struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id" validate:"required"`
	Formation string    `json:"formation" validate:"required,max=32"`
	Slots     []Slot    `json:"slots"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l TeamLineup) Validate() error {
	return validation.Struct(l)
}

func (l TeamLineup) Clone() TeamLineup {
	copied := l
	copied.Slots = append([]Slot(nil), l.Slots...)
	return copied
}

// MatchLineup is the lineup used in one match; zero or one per match.
type MatchLineup struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"match_id" validate:"required"`
	Formation   string    `json:"formation" validate:"required,max=32"`
	Starters    []Slot    `json:"starters"`
	Substitutes []int64   `json:"substitutes"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l MatchLineup) Validate() error {
	return validation.Struct(l)
}

func (l MatchLineup) Clone() MatchLineup {
	copied := l
	copied.Starters = append([]Slot(nil), l.Starters...)
	copied.Substitutes = append([]int64(nil), l.Substitutes...)
	return copied
}
