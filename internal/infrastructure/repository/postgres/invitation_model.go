package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/invitation"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/team"
)

type invitationTableModel struct {
	ID        int64         `db:"id,readonly"`
	TeamID    int64         `db:"team_id"`
	Email     string        `db:"email"`
	Role      string        `db:"role"`
	Token     string        `db:"token"`
	Status    string        `db:"status"`
	InvitedBy sql.NullInt64 `db:"invited_by"`
	CreatedAt time.Time     `db:"created_at,insertonly"`
	ExpiresAt sql.NullTime  `db:"expires_at"`
}

var invitationMapping = mapping[invitationTableModel, invitation.Invitation]{
	table: string(store.FamilyInvitation),
	toDomain: func(row invitationTableModel) invitation.Invitation {
		return invitation.Invitation{
			ID:        row.ID,
			TeamID:    row.TeamID,
			Email:     row.Email,
			Role:      team.Role(row.Role),
			Token:     row.Token,
			Status:    invitation.Status(row.Status),
			InvitedBy: nullInt64Ptr(row.InvitedBy),
			CreatedAt: row.CreatedAt.UTC(),
			ExpiresAt: nullTimePtr(row.ExpiresAt),
		}
	},
	toRow: func(i invitation.Invitation) invitationTableModel {
		return invitationTableModel{
			ID:        i.ID,
			TeamID:    i.TeamID,
			Email:     i.Email,
			Role:      string(i.Role),
			Token:     i.Token,
			Status:    string(i.Status),
			InvitedBy: nullableInt64(i.InvitedBy),
			CreatedAt: i.CreatedAt,
			ExpiresAt: nullableTime(i.ExpiresAt),
		}
	},
}
