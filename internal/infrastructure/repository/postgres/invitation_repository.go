package postgres

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/invitation"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/team"
	"github.com/riskibarqy/teamhub/internal/domain/user"
	"github.com/riskibarqy/teamhub/internal/platform/joincode"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

type InvitationRepository struct {
	c *conn
}

func (r *InvitationRepository) CreateInvitation(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	inv.Email = user.NormalizeEmail(inv.Email)
	if inv.Role == "" {
		inv.Role = team.RolePlayer
	}
	if inv.Status == "" {
		inv.Status = invitation.StatusPending
	}
	if inv.Token == "" {
		token, err := joincode.NewToken()
		if err != nil {
			return invitation.Invitation{}, storeerr.Internal(err, "create invitation")
		}
		inv.Token = token
	}
	inv.CreatedAt = r.c.now()
	if err := inv.Validate(); err != nil {
		return invitation.Invitation{}, err
	}
	return create(ctx, r.c, invitationMapping, "create invitation", inv)
}

func (r *InvitationRepository) GetInvitation(ctx context.Context, id int64) (invitation.Invitation, bool, error) {
	return get(ctx, r.c, invitationMapping, "get invitation", qb.Eq("id", id))
}

func (r *InvitationRepository) GetInvitationByEmail(ctx context.Context, teamID int64, email string) (invitation.Invitation, bool, error) {
	return get(ctx, r.c, invitationMapping, "get invitation by email",
		qb.Eq("team_id", teamID),
		qb.Eq("email", user.NormalizeEmail(email)),
	)
}

func (r *InvitationRepository) GetInvitationByToken(ctx context.Context, token string) (invitation.Invitation, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return invitation.Invitation{}, false, nil
	}
	return get(ctx, r.c, invitationMapping, "get invitation by token", qb.Eq("token", token))
}

func (r *InvitationRepository) ListInvitations(ctx context.Context, filter invitation.Filter) ([]invitation.Invitation, error) {
	var conds []qb.Condition
	if filter.TeamID != 0 {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	if email := user.NormalizeEmail(filter.Email); email != "" {
		conds = append(conds, qb.Eq("email", email))
	}
	if filter.Status != "" {
		conds = append(conds, qb.Eq("status", string(filter.Status)))
	}
	return list(ctx, r.c, invitationMapping, "list invitations", filter.Limit, conds...)
}

func (r *InvitationRepository) UpdateInvitation(ctx context.Context, id int64, patch invitation.Patch) (invitation.Invitation, bool, error) {
	return update(ctx, r.c, invitationMapping, "update invitation", id, func(i *invitation.Invitation) error {
		patch.Apply(i)
		return i.Validate()
	})
}

func (r *InvitationRepository) DeleteInvitation(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, invitationMapping.table, "delete invitation", qb.Eq("id", id))
}
