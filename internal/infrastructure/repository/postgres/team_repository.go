package postgres

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/team"
	"github.com/riskibarqy/teamhub/internal/platform/joincode"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

type TeamRepository struct {
	c        *conn
	codes    joincode.Generator
	attempts int
}

func isJoinCodeConflict(err error) bool {
	se, ok := storeerr.As(err)
	return ok && se.Kind == storeerr.KindConflict && se.Field == "join_code"
}

// CreateTeam keeps a caller-supplied join code; otherwise it draws codes and
// lets the unique constraint reject collisions until the budget runs out.
func (r *TeamRepository) CreateTeam(ctx context.Context, t team.Team) (team.Team, error) {
	t.Name = strings.TrimSpace(t.Name)
	now := r.c.now()
	t.CreatedAt, t.UpdatedAt = now, now

	if t.JoinCode != "" {
		t.JoinCode = team.NormalizeJoinCode(t.JoinCode)
		if err := t.Validate(); err != nil {
			return team.Team{}, err
		}
		return create(ctx, r.c, teamMapping, "create team", t)
	}

	for attempt := 0; attempt < r.attempts; attempt++ {
		code, err := r.codes.NewCode()
		if err != nil {
			return team.Team{}, storeerr.Internal(err, "create team")
		}
		t.JoinCode = code
		if err := t.Validate(); err != nil {
			return team.Team{}, err
		}
		created, err := create(ctx, r.c, teamMapping, "create team", t)
		if isJoinCodeConflict(err) {
			r.c.logger.DebugContext(ctx, "join code collision", "attempt", attempt+1)
			continue
		}
		return created, err
	}
	return team.Team{}, storeerr.Conflict("join_code", "could not allocate a unique join code")
}

func (r *TeamRepository) GetTeam(ctx context.Context, id int64) (team.Team, bool, error) {
	return get(ctx, r.c, teamMapping, "get team", qb.Eq("id", id))
}

func (r *TeamRepository) GetTeamByJoinCode(ctx context.Context, code string) (team.Team, bool, error) {
	code = team.NormalizeJoinCode(code)
	if code == "" {
		return team.Team{}, false, nil
	}
	return get(ctx, r.c, teamMapping, "get team by join code", qb.Eq("join_code", code))
}

func (r *TeamRepository) ListTeams(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	var conds []qb.Condition
	if filter.CreatedBy != 0 {
		conds = append(conds, qb.Eq("created_by", filter.CreatedBy))
	}
	if filter.MemberUserID != 0 {
		conds = append(conds, qb.Expr("id IN (SELECT team_id FROM team_members WHERE user_id = ?)", filter.MemberUserID))
	}
	return list(ctx, r.c, teamMapping, "list teams", filter.Limit, conds...)
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, id int64, patch team.Patch) (team.Team, bool, error) {
	return update(ctx, r.c, teamMapping, "update team", id, func(t *team.Team) error {
		patch.Apply(t)
		t.UpdatedAt = r.c.now()
		return t.Validate()
	})
}

func (r *TeamRepository) RegenerateJoinCode(ctx context.Context, id int64) (team.Team, bool, error) {
	for attempt := 0; attempt < r.attempts; attempt++ {
		code, err := r.codes.NewCode()
		if err != nil {
			return team.Team{}, false, storeerr.Internal(err, "regenerate join code")
		}
		updated, ok, err := update(ctx, r.c, teamMapping, "regenerate join code", id, func(t *team.Team) error {
			t.JoinCode = code
			t.UpdatedAt = r.c.now()
			return t.Validate()
		})
		if isJoinCodeConflict(err) {
			continue
		}
		return updated, ok, err
	}
	return team.Team{}, true, storeerr.Conflict("join_code", "could not allocate a unique join code")
}

// DeleteTeam removes the team; the schema cascades to everything it owns.
func (r *TeamRepository) DeleteTeam(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, teamMapping.table, "delete team", qb.Eq("id", id))
}

type MemberRepository struct {
	c *conn
}

func (r *MemberRepository) CreateTeamMember(ctx context.Context, m team.Member) (team.Member, error) {
	if m.Role == "" {
		m.Role = team.RolePlayer
	}
	m.DisplayName = strings.TrimSpace(m.DisplayName)
	m.JoinedAt = r.c.now()
	if err := m.Validate(); err != nil {
		return team.Member{}, err
	}
	return create(ctx, r.c, memberMapping, "create team member", m)
}

func (r *MemberRepository) GetTeamMember(ctx context.Context, id int64) (team.Member, bool, error) {
	return get(ctx, r.c, memberMapping, "get team member", qb.Eq("id", id))
}

func (r *MemberRepository) GetTeamMemberByUser(ctx context.Context, teamID, userID int64) (team.Member, bool, error) {
	return get(ctx, r.c, memberMapping, "get team member by user", qb.Eq("team_id", teamID), qb.Eq("user_id", userID))
}

func (r *MemberRepository) ListTeamMembers(ctx context.Context, filter team.MemberFilter) ([]team.Member, error) {
	var conds []qb.Condition
	if filter.TeamID != 0 {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	if filter.UserID != 0 {
		conds = append(conds, qb.Eq("user_id", filter.UserID))
	}
	if filter.Role != "" {
		conds = append(conds, qb.Eq("role", string(filter.Role)))
	}
	return list(ctx, r.c, memberMapping, "list team members", filter.Limit, conds...)
}

func (r *MemberRepository) UpdateTeamMember(ctx context.Context, id int64, patch team.MemberPatch) (team.Member, bool, error) {
	return update(ctx, r.c, memberMapping, "update team member", id, func(m *team.Member) error {
		patch.Apply(m)
		return m.Validate()
	})
}

func (r *MemberRepository) DeleteTeamMember(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, memberMapping.table, "delete team member", qb.Eq("id", id))
}
