package playerstat

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

// Stat is one member's line for one match; unique per (match, member).
type Stat struct {
	ID            int64     `json:"id"`
	MatchID       int64     `json:"match_id" validate:"required"`
	TeamMemberID  int64     `json:"team_member_id" validate:"required"`
	Goals         int       `json:"goals" validate:"gte=0"`
	Assists       int       `json:"assists" validate:"gte=0"`
	YellowCards   int       `json:"yellow_cards" validate:"gte=0"`
	RedCards      int       `json:"red_cards" validate:"gte=0"`
	MinutesPlayed int       `json:"minutes_played" validate:"gte=0"`
	Rating        *float64  `json:"rating" validate:"omitempty,gte=0,lte=10"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s Stat) Validate() error {
	return validation.Struct(s)
}

type Patch struct {
	Goals         *int
	Assists       *int
	YellowCards   *int
	RedCards      *int
	MinutesPlayed *int
	Rating        *float64
}

func (p Patch) Apply(s *Stat) {
	if p.Goals != nil {
		s.Goals = *p.Goals
	}
	if p.Assists != nil {
		s.Assists = *p.Assists
	}
	if p.YellowCards != nil {
		s.YellowCards = *p.YellowCards
	}
	if p.RedCards != nil {
		s.RedCards = *p.RedCards
	}
	if p.MinutesPlayed != nil {
		s.MinutesPlayed = *p.MinutesPlayed
	}
	if p.Rating != nil {
		r := *p.Rating
		s.Rating = &r
	}
}

type Filter struct {
	MatchID      int64
	TeamMemberID int64
	Limit        int
}
