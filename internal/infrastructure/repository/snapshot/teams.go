package snapshot

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/team"
)

func teamSchema() schema[team.Team] {
	return schema[team.Team]{
		id:    func(t team.Team) int64 { return t.ID },
		setID: func(t *team.Team, id int64) { t.ID = id },
		clone: func(t team.Team) team.Team {
			t.CreatedBy = cloneID(t.CreatedBy)
			return t
		},
		fks: map[string]foreignKey[team.Team]{
			"created_by": {
				get:   func(t team.Team) (int64, bool) { return optRef(t.CreatedBy) },
				clear: func(t *team.Team) { t.CreatedBy = nil },
			},
		},
	}
}

func teamConflict(candidate, existing team.Team) error {
	if existing.JoinCode == candidate.JoinCode {
		return storeerr.Conflict("join_code", "join code already exists")
	}
	return nil
}

func isJoinCodeConflict(err error) bool {
	se, ok := storeerr.As(err)
	return ok && se.Kind == storeerr.KindConflict && se.Field == "join_code"
}

// CreateTeam keeps a caller-supplied join code, otherwise draws codes until
// one is free or the attempt budget runs out.
func (s *Store) CreateTeam(_ context.Context, t team.Team) (team.Team, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	t.Name = strings.TrimSpace(t.Name)
	if err := s.requireOptRef("created_by", store.FamilyUser, t.CreatedBy); err != nil {
		return team.Team{}, err
	}
	now := s.now()
	t.CreatedAt, t.UpdatedAt = now, now

	if t.JoinCode != "" {
		t.JoinCode = team.NormalizeJoinCode(t.JoinCode)
		if err := t.Validate(); err != nil {
			return team.Team{}, err
		}
		return s.teams.insert(t, teamConflict)
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		code, err := s.joinCodes.NewCode()
		if err != nil {
			return team.Team{}, storeerr.Internal(err, "create team")
		}
		t.JoinCode = code
		if err := t.Validate(); err != nil {
			return team.Team{}, err
		}
		created, err := s.teams.insert(t, teamConflict)
		if isJoinCodeConflict(err) {
			continue
		}
		return created, err
	}
	return team.Team{}, storeerr.Conflict("join_code", "could not allocate a unique join code")
}

func (s *Store) GetTeam(_ context.Context, id int64) (team.Team, bool, error) {
	t, ok := s.teams.get(id)
	return t, ok, nil
}

func (s *Store) GetTeamByJoinCode(_ context.Context, code string) (team.Team, bool, error) {
	code = team.NormalizeJoinCode(code)
	if code == "" {
		return team.Team{}, false, nil
	}
	t, ok := s.teams.find(func(t team.Team) bool { return t.JoinCode == code })
	return t, ok, nil
}

func (s *Store) ListTeams(_ context.Context, filter team.Filter) ([]team.Team, error) {
	var memberOf map[int64]struct{}
	if filter.MemberUserID != 0 {
		memberOf = make(map[int64]struct{})
		for _, m := range s.members.list(func(m team.Member) bool {
			return m.UserID != nil && *m.UserID == filter.MemberUserID
		}, 0) {
			memberOf[m.TeamID] = struct{}{}
		}
	}

	return s.teams.list(func(t team.Team) bool {
		if filter.CreatedBy != 0 && (t.CreatedBy == nil || *t.CreatedBy != filter.CreatedBy) {
			return false
		}
		if memberOf != nil {
			if _, ok := memberOf[t.ID]; !ok {
				return false
			}
		}
		return true
	}, filter.Limit), nil
}

func (s *Store) UpdateTeam(_ context.Context, id int64, patch team.Patch) (team.Team, bool, error) {
	return s.teams.update(id, func(t *team.Team) error {
		patch.Apply(t)
		t.UpdatedAt = s.now()
		return t.Validate()
	}, teamConflict)
}

func (s *Store) RegenerateJoinCode(_ context.Context, id int64) (team.Team, bool, error) {
	for attempt := 0; attempt < s.attempts; attempt++ {
		code, err := s.joinCodes.NewCode()
		if err != nil {
			return team.Team{}, false, storeerr.Internal(err, "regenerate join code")
		}
		updated, ok, err := s.teams.update(id, func(t *team.Team) error {
			t.JoinCode = code
			t.UpdatedAt = s.now()
			return t.Validate()
		}, teamConflict)
		if isJoinCodeConflict(err) {
			continue
		}
		return updated, ok, err
	}
	return team.Team{}, true, storeerr.Conflict("join_code", "could not allocate a unique join code")
}

// DeleteTeam removes the team and everything it owns, in plan order.
func (s *Store) DeleteTeam(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyTeam, id)
}

func memberSchema() schema[team.Member] {
	return schema[team.Member]{
		id:    func(m team.Member) int64 { return m.ID },
		setID: func(m *team.Member, id int64) { m.ID = id },
		clone: func(m team.Member) team.Member {
			m.UserID = cloneID(m.UserID)
			m.JerseyNumber = cloneInt(m.JerseyNumber)
			return m
		},
		fks: map[string]foreignKey[team.Member]{
			"team_id": {get: func(m team.Member) (int64, bool) { return refOf(m.TeamID) }},
			"user_id": {get: func(m team.Member) (int64, bool) { return optRef(m.UserID) }},
		},
	}
}

func memberConflict(candidate, existing team.Member) error {
	if candidate.UserID == nil || existing.UserID == nil {
		return nil
	}
	if existing.TeamID == candidate.TeamID && *existing.UserID == *candidate.UserID {
		return storeerr.Conflict("team_member", "team member already exists")
	}
	return nil
}

func (s *Store) CreateTeamMember(_ context.Context, m team.Member) (team.Member, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	if m.Role == "" {
		m.Role = team.RolePlayer
	}
	m.DisplayName = strings.TrimSpace(m.DisplayName)
	m.JoinedAt = s.now()
	if err := m.Validate(); err != nil {
		return team.Member{}, err
	}
	if err := firstError(
		s.requireRef("team_id", store.FamilyTeam, m.TeamID),
		s.requireOptRef("user_id", store.FamilyUser, m.UserID),
	); err != nil {
		return team.Member{}, err
	}
	return s.members.insert(m, memberConflict)
}

func (s *Store) GetTeamMember(_ context.Context, id int64) (team.Member, bool, error) {
	m, ok := s.members.get(id)
	return m, ok, nil
}

func (s *Store) GetTeamMemberByUser(_ context.Context, teamID, userID int64) (team.Member, bool, error) {
	m, ok := s.members.find(func(m team.Member) bool {
		return m.TeamID == teamID && m.UserID != nil && *m.UserID == userID
	})
	return m, ok, nil
}

func (s *Store) ListTeamMembers(_ context.Context, filter team.MemberFilter) ([]team.Member, error) {
	return s.members.list(func(m team.Member) bool {
		if filter.TeamID != 0 && m.TeamID != filter.TeamID {
			return false
		}
		if filter.UserID != 0 && (m.UserID == nil || *m.UserID != filter.UserID) {
			return false
		}
		if filter.Role != "" && m.Role != filter.Role {
			return false
		}
		return true
	}, filter.Limit), nil
}

func (s *Store) UpdateTeamMember(_ context.Context, id int64, patch team.MemberPatch) (team.Member, bool, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	refErr := s.requireOptRef("user_id", store.FamilyUser, patch.UserID)
	return updateChecked(s.members, id, refErr, func(m *team.Member) error {
		patch.Apply(m)
		return m.Validate()
	}, memberConflict)
}

// DeleteTeamMember drops the member's stats, cards and substitutions and
// clears it from goals.
func (s *Store) DeleteTeamMember(ctx context.Context, id int64) (bool, error) {
	return s.deleteRoot(ctx, store.FamilyTeamMember, id)
}
