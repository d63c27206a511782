package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/invitation"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/team"
	"github.com/riskibarqy/teamhub/internal/domain/user"
	"github.com/riskibarqy/teamhub/internal/platform/joincode"
)

func invitationSchema() schema[invitation.Invitation] {
	return schema[invitation.Invitation]{
		id:    func(i invitation.Invitation) int64 { return i.ID },
		setID: func(i *invitation.Invitation, id int64) { i.ID = id },
		clone: func(i invitation.Invitation) invitation.Invitation {
			i.InvitedBy = cloneID(i.InvitedBy)
			if i.ExpiresAt != nil {
				at := *i.ExpiresAt
				i.ExpiresAt = &at
			}
			return i
		},
		fks: map[string]foreignKey[invitation.Invitation]{
			"team_id": {get: func(i invitation.Invitation) (int64, bool) { return refOf(i.TeamID) }},
			"invited_by": {
				get:   func(i invitation.Invitation) (int64, bool) { return optRef(i.InvitedBy) },
				clear: func(i *invitation.Invitation) { i.InvitedBy = nil },
			},
		},
	}
}

func invitationConflict(candidate, existing invitation.Invitation) error {
	if existing.TeamID == candidate.TeamID && existing.Email == candidate.Email {
		return storeerr.Conflict("invitation", "invitation already exists")
	}
	if existing.Token == candidate.Token {
		return storeerr.Conflict("token", "invitation token already exists")
	}
	return nil
}

func (s *Store) CreateInvitation(_ context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

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
	if inv.ExpiresAt != nil {
		at := inv.ExpiresAt.UTC()
		inv.ExpiresAt = &at
	}
	inv.CreatedAt = s.now()
	if err := inv.Validate(); err != nil {
		return invitation.Invitation{}, err
	}
	if err := firstError(
		s.requireRef("team_id", store.FamilyTeam, inv.TeamID),
		s.requireOptRef("invited_by", store.FamilyUser, inv.InvitedBy),
	); err != nil {
		return invitation.Invitation{}, err
	}
	return s.invitations.insert(inv, invitationConflict)
}

func (s *Store) GetInvitation(_ context.Context, id int64) (invitation.Invitation, bool, error) {
	inv, ok := s.invitations.get(id)
	return inv, ok, nil
}

func (s *Store) GetInvitationByEmail(_ context.Context, teamID int64, email string) (invitation.Invitation, bool, error) {
	email = user.NormalizeEmail(email)
	inv, ok := s.invitations.find(func(i invitation.Invitation) bool {
		return i.TeamID == teamID && i.Email == email
	})
	return inv, ok, nil
}

func (s *Store) GetInvitationByToken(_ context.Context, token string) (invitation.Invitation, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return invitation.Invitation{}, false, nil
	}
	inv, ok := s.invitations.find(func(i invitation.Invitation) bool { return i.Token == token })
	return inv, ok, nil
}

func (s *Store) ListInvitations(_ context.Context, filter invitation.Filter) ([]invitation.Invitation, error) {
	email := user.NormalizeEmail(filter.Email)
	return s.invitations.list(func(i invitation.Invitation) bool {
		if filter.TeamID != 0 && i.TeamID != filter.TeamID {
			return false
		}
		if email != "" && i.Email != email {
			return false
		}
		if filter.Status != "" && i.Status != filter.Status {
			return false
		}
		return true
	}, filter.Limit), nil
}

func (s *Store) UpdateInvitation(_ context.Context, id int64, patch invitation.Patch) (invitation.Invitation, bool, error) {
	return s.invitations.update(id, func(i *invitation.Invitation) error {
		patch.Apply(i)
		if i.ExpiresAt != nil {
			at := i.ExpiresAt.UTC()
			i.ExpiresAt = &at
		}
		return i.Validate()
	}, invitationConflict)
}

func (s *Store) DeleteInvitation(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyInvitation, id)
}
