package team

import "context"

// Repository describes team persistence.
type Repository interface {
	// CreateTeam generates a join code when none is given.
	CreateTeam(ctx context.Context, t Team) (Team, error)
	GetTeam(ctx context.Context, id int64) (Team, bool, error)
	GetTeamByJoinCode(ctx context.Context, code string) (Team, bool, error)
	ListTeams(ctx context.Context, filter Filter) ([]Team, error)
	UpdateTeam(ctx context.Context, id int64, patch Patch) (Team, bool, error)
	RegenerateJoinCode(ctx context.Context, id int64) (Team, bool, error)
	DeleteTeam(ctx context.Context, id int64) (bool, error)
}

type MemberRepository interface {
	CreateTeamMember(ctx context.Context, m Member) (Member, error)
	GetTeamMember(ctx context.Context, id int64) (Member, bool, error)
	GetTeamMemberByUser(ctx context.Context, teamID, userID int64) (Member, bool, error)
	ListTeamMembers(ctx context.Context, filter MemberFilter) ([]Member, error)
	UpdateTeamMember(ctx context.Context, id int64, patch MemberPatch) (Member, bool, error)
	DeleteTeamMember(ctx context.Context, id int64) (bool, error)
}
