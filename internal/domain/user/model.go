package user

import (
	"strings"
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/validation"
)

// User is an account profile. Username and email are unique.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required,max=64"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"password_hash"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) Validate() error {
	return validation.Struct(u)
}

// Normalize trims the natural keys and lower-cases the email.
func (u *User) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = NormalizeEmail(u.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Patch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	DisplayName  *string
	AvatarURL    *string
}

func (p Patch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	u.Normalize()
}

type Filter struct {
	Limit int
}
