package postgres

import (
	"context"
	"strings"

	"github.com/riskibarqy/teamhub/internal/domain/match"
	"github.com/riskibarqy/teamhub/internal/domain/playerstat"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

type MatchRepository struct {
	c *conn
}

func (r *MatchRepository) CreateMatch(ctx context.Context, m match.Match) (match.Match, error) {
	if m.Status == "" {
		m.Status = match.StatusScheduled
	}
	m.Opponent = strings.TrimSpace(m.Opponent)
	m.ScheduledAt = m.ScheduledAt.UTC()
	now := r.c.now()
	m.CreatedAt, m.UpdatedAt = now, now
	if err := m.Validate(); err != nil {
		return match.Match{}, err
	}
	return create(ctx, r.c, matchMapping, "create match", m)
}

func (r *MatchRepository) GetMatch(ctx context.Context, id int64) (match.Match, bool, error) {
	return get(ctx, r.c, matchMapping, "get match", qb.Eq("id", id))
}

func (r *MatchRepository) ListMatches(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	var conds []qb.Condition
	if filter.TeamID != 0 {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	if filter.SeasonID != nil {
		conds = append(conds, qb.Eq("season_id", *filter.SeasonID))
	}
	if filter.Status != "" {
		conds = append(conds, qb.Eq("status", string(filter.Status)))
	}
	return list(ctx, r.c, matchMapping, "list matches", filter.Limit, conds...)
}

func (r *MatchRepository) UpdateMatch(ctx context.Context, id int64, patch match.Patch) (match.Match, bool, error) {
	return update(ctx, r.c, matchMapping, "update match", id, func(m *match.Match) error {
		patch.Apply(m)
		m.ScheduledAt = m.ScheduledAt.UTC()
		m.UpdatedAt = r.c.now()
		return m.Validate()
	})
}

// DeleteMatch removes the match; lineup, substitutions, goals, cards, photos
// and player stats follow through ON DELETE CASCADE.
func (r *MatchRepository) DeleteMatch(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, matchMapping.table, "delete match", qb.Eq("id", id))
}

type MatchDetailRepository struct {
	c *conn
}

func matchScope(filter match.DetailFilter) []qb.Condition {
	if filter.MatchID == 0 {
		return nil
	}
	return []qb.Condition{qb.Eq("match_id", filter.MatchID)}
}

func (r *MatchDetailRepository) CreateSubstitution(ctx context.Context, s match.Substitution) (match.Substitution, error) {
	if err := s.Validate(); err != nil {
		return match.Substitution{}, err
	}
	return create(ctx, r.c, substitutionMapping, "create substitution", s)
}

func (r *MatchDetailRepository) GetSubstitution(ctx context.Context, id int64) (match.Substitution, bool, error) {
	return get(ctx, r.c, substitutionMapping, "get substitution", qb.Eq("id", id))
}

func (r *MatchDetailRepository) ListSubstitutions(ctx context.Context, filter match.DetailFilter) ([]match.Substitution, error) {
	return list(ctx, r.c, substitutionMapping, "list substitutions", filter.Limit, matchScope(filter)...)
}

func (r *MatchDetailRepository) UpdateSubstitution(ctx context.Context, id int64, patch match.SubstitutionPatch) (match.Substitution, bool, error) {
	return update(ctx, r.c, substitutionMapping, "update substitution", id, func(s *match.Substitution) error {
		patch.Apply(s)
		return s.Validate()
	})
}

func (r *MatchDetailRepository) DeleteSubstitution(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, substitutionMapping.table, "delete substitution", qb.Eq("id", id))
}

func (r *MatchDetailRepository) CreateGoal(ctx context.Context, g match.Goal) (match.Goal, error) {
	if err := g.Validate(); err != nil {
		return match.Goal{}, err
	}
	return create(ctx, r.c, goalMapping, "create goal", g)
}

func (r *MatchDetailRepository) GetGoal(ctx context.Context, id int64) (match.Goal, bool, error) {
	return get(ctx, r.c, goalMapping, "get goal", qb.Eq("id", id))
}

func (r *MatchDetailRepository) ListGoals(ctx context.Context, filter match.DetailFilter) ([]match.Goal, error) {
	return list(ctx, r.c, goalMapping, "list goals", filter.Limit, matchScope(filter)...)
}

func (r *MatchDetailRepository) UpdateGoal(ctx context.Context, id int64, patch match.GoalPatch) (match.Goal, bool, error) {
	return update(ctx, r.c, goalMapping, "update goal", id, func(g *match.Goal) error {
		patch.Apply(g)
		return g.Validate()
	})
}

func (r *MatchDetailRepository) DeleteGoal(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, goalMapping.table, "delete goal", qb.Eq("id", id))
}

func (r *MatchDetailRepository) CreateCard(ctx context.Context, c match.Card) (match.Card, error) {
	if err := c.Validate(); err != nil {
		return match.Card{}, err
	}
	return create(ctx, r.c, cardMapping, "create card", c)
}

func (r *MatchDetailRepository) GetCard(ctx context.Context, id int64) (match.Card, bool, error) {
	return get(ctx, r.c, cardMapping, "get card", qb.Eq("id", id))
}

func (r *MatchDetailRepository) ListCards(ctx context.Context, filter match.DetailFilter) ([]match.Card, error) {
	return list(ctx, r.c, cardMapping, "list cards", filter.Limit, matchScope(filter)...)
}

func (r *MatchDetailRepository) UpdateCard(ctx context.Context, id int64, patch match.CardPatch) (match.Card, bool, error) {
	return update(ctx, r.c, cardMapping, "update card", id, func(c *match.Card) error {
		patch.Apply(c)
		return c.Validate()
	})
}

func (r *MatchDetailRepository) DeleteCard(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, cardMapping.table, "delete card", qb.Eq("id", id))
}

func (r *MatchDetailRepository) CreatePhoto(ctx context.Context, p match.Photo) (match.Photo, error) {
	p.URL = strings.TrimSpace(p.URL)
	p.CreatedAt = r.c.now()
	if err := p.Validate(); err != nil {
		return match.Photo{}, err
	}
	return create(ctx, r.c, photoMapping, "create photo", p)
}

func (r *MatchDetailRepository) GetPhoto(ctx context.Context, id int64) (match.Photo, bool, error) {
	return get(ctx, r.c, photoMapping, "get photo", qb.Eq("id", id))
}

func (r *MatchDetailRepository) ListPhotos(ctx context.Context, filter match.DetailFilter) ([]match.Photo, error) {
	return list(ctx, r.c, photoMapping, "list photos", filter.Limit, matchScope(filter)...)
}

func (r *MatchDetailRepository) UpdatePhoto(ctx context.Context, id int64, patch match.PhotoPatch) (match.Photo, bool, error) {
	return update(ctx, r.c, photoMapping, "update photo", id, func(p *match.Photo) error {
		patch.Apply(p)
		return p.Validate()
	})
}

func (r *MatchDetailRepository) DeletePhoto(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, photoMapping.table, "delete photo", qb.Eq("id", id))
}

type PlayerStatRepository struct {
	c *conn
}

func (r *PlayerStatRepository) CreatePlayerStat(ctx context.Context, s playerstat.Stat) (playerstat.Stat, error) {
	s.UpdatedAt = r.c.now()
	if err := s.Validate(); err != nil {
		return playerstat.Stat{}, err
	}
	return create(ctx, r.c, playerStatMapping, "create player stat", s)
}

func (r *PlayerStatRepository) GetPlayerStat(ctx context.Context, id int64) (playerstat.Stat, bool, error) {
	return get(ctx, r.c, playerStatMapping, "get player stat", qb.Eq("id", id))
}

func (r *PlayerStatRepository) GetPlayerStatByMember(ctx context.Context, matchID, teamMemberID int64) (playerstat.Stat, bool, error) {
	return get(ctx, r.c, playerStatMapping, "get player stat by member",
		qb.Eq("match_id", matchID),
		qb.Eq("team_member_id", teamMemberID),
	)
}

func (r *PlayerStatRepository) ListPlayerStats(ctx context.Context, filter playerstat.Filter) ([]playerstat.Stat, error) {
	var conds []qb.Condition
	if filter.MatchID != 0 {
		conds = append(conds, qb.Eq("match_id", filter.MatchID))
	}
	if filter.TeamMemberID != 0 {
		conds = append(conds, qb.Eq("team_member_id", filter.TeamMemberID))
	}
	return list(ctx, r.c, playerStatMapping, "list player stats", filter.Limit, conds...)
}

func (r *PlayerStatRepository) UpdatePlayerStat(ctx context.Context, id int64, patch playerstat.Patch) (playerstat.Stat, bool, error) {
	return update(ctx, r.c, playerStatMapping, "update player stat", id, func(s *playerstat.Stat) error {
		patch.Apply(s)
		s.UpdatedAt = r.c.now()
		return s.Validate()
	})
}

func (r *PlayerStatRepository) DeletePlayerStat(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, playerStatMapping.table, "delete player stat", qb.Eq("id", id))
}
