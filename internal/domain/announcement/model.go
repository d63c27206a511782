package announcement

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

type Announcement struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id" validate:"required"`
	AuthorID  *int64    `json:"author_id"`
	Title     string    `json:"title" validate:"required,max=200"`
	Body      string    `json:"body"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Announcement) Validate() error {
	return validation.Struct(a)
}

type Patch struct {
	Title  *string
	Body   *string
	Pinned *bool
}

func (p Patch) Apply(a *Announcement) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Body != nil {
		a.Body = *p.Body
	}
	if p.Pinned != nil {
		a.Pinned = *p.Pinned
	}
}

// Filter lists pinned announcements first, then newest first.
type Filter struct {
	TeamID int64
	Limit  int
}
