package season

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

// Season groups a team's matches and league table. Whether more than one
// season may be active at once is caller policy; ActivateSeason is the only
// operation that deactivates siblings.
type Season struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=120"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Season) Validate() error {
	return validation.Struct(s)
}

type Patch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  *bool
}

func (p Patch) Apply(s *Season) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}

type Filter struct {
	TeamID     int64
	ActiveOnly bool
	Limit      int
}
