package invitation

import "context"

type Repository interface {
	// CreateInvitation fills Token and Status when empty.
	CreateInvitation(ctx context.Context, inv Invitation) (Invitation, error)
	GetInvitation(ctx context.Context, id int64) (Invitation, bool, error)
	GetInvitationByEmail(ctx context.Context, teamID int64, email string) (Invitation, bool, error)
	GetInvitationByToken(ctx context.Context, token string) (Invitation, bool, error)
	ListInvitations(ctx context.Context, filter Filter) ([]Invitation, error)
	UpdateInvitation(ctx context.Context, id int64, patch Patch) (Invitation, bool, error)
	DeleteInvitation(ctx context.Context, id int64) (bool, error)
}
