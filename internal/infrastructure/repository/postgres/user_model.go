package postgres

import (
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/user"
)

type userTableModel struct {
	ID           int64     `db:"id,readonly"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	DisplayName  string    `db:"display_name"`
	AvatarURL    string    `db:"avatar_url"`
	CreatedAt    time.Time `db:"created_at,insertonly"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var userMapping = mapping[userTableModel, user.User]{
	table: string(store.FamilyUser),
	toDomain: func(row userTableModel) user.User {
		return user.User{
			ID:           row.ID,
			Username:     row.Username,
			Email:        row.Email,
			PasswordHash: row.PasswordHash,
			DisplayName:  row.DisplayName,
			AvatarURL:    row.AvatarURL,
			CreatedAt:    row.CreatedAt.UTC(),
			UpdatedAt:    row.UpdatedAt.UTC(),
		}
	},
	toRow: func(u user.User) userTableModel {
		return userTableModel{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			DisplayName:  u.DisplayName,
			AvatarURL:    u.AvatarURL,
			CreatedAt:    u.CreatedAt,
			UpdatedAt:    u.UpdatedAt,
		}
	},
}
