package classification

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

// Classification is one row of a team's league table, keyed by the opposing
// club name and optionally scoped to a season.
type Classification struct {
	ID               int64     `json:"id"`
	TeamID           int64     `json:"team_id" validate:"required"`
	SeasonID         *int64    `json:"season_id"`
	ExternalTeamName string    `json:"external_team_name" validate:"required,max=120"`
	Position         int       `json:"position" validate:"gte=0"`
	Played           int       `json:"played" validate:"gte=0"`
	Won              int       `json:"won" validate:"gte=0"`
	Drawn            int       `json:"drawn" validate:"gte=0"`
	Lost             int       `json:"lost" validate:"gte=0"`
	GoalsFor         int       `json:"goals_for" validate:"gte=0"`
	GoalsAgainst     int       `json:"goals_against" validate:"gte=0"`
	Points           int       `json:"points"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c Classification) Validate() error {
	return validation.Struct(c)
}

func (c Classification) GoalDifference() int {
	return c.GoalsFor - c.GoalsAgainst
}

// SameKey reports whether two rows collide on (team, external name, season).
func (c Classification) SameKey(other Classification) bool {
	if c.TeamID != other.TeamID || c.ExternalTeamName != other.ExternalTeamName {
		return false
	}
	switch {
	case c.SeasonID == nil && other.SeasonID == nil:
		return true
	case c.SeasonID == nil || other.SeasonID == nil:
		return false
	default:
		return *c.SeasonID == *other.SeasonID
	}
}

type Patch struct {
	ExternalTeamName *string
	Position         *int
	Played           *int
	Won              *int
	Drawn            *int
	Lost             *int
	GoalsFor         *int
	GoalsAgainst     *int
	Points           *int
}

func (p Patch) Apply(c *Classification) {
	if p.ExternalTeamName != nil {
		c.ExternalTeamName = *p.ExternalTeamName
	}
	setInt(&c.Position, p.Position)
	setInt(&c.Played, p.Played)
	setInt(&c.Won, p.Won)
	setInt(&c.Drawn, p.Drawn)
	setInt(&c.Lost, p.Lost)
	setInt(&c.GoalsFor, p.GoalsFor)
	setInt(&c.GoalsAgainst, p.GoalsAgainst)
	setInt(&c.Points, p.Points)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Filter lists rows by position, then id.
type Filter struct {
	TeamID   int64
	SeasonID *int64
	Limit    int
}
