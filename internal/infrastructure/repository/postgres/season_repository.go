package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/teamhub/internal/domain/classification"
	"github.com/riskibarqy/teamhub/internal/domain/season"
	qb "github.com/riskibarqy/teamhub/internal/platform/querybuilder"
)

type SeasonRepository struct {
	c *conn
}

func (r *SeasonRepository) CreateSeason(ctx context.Context, s season.Season) (season.Season, error) {
	s.StartDate, s.EndDate = s.StartDate.UTC(), s.EndDate.UTC()
	s.CreatedAt = r.c.now()
	if err := s.Validate(); err != nil {
		return season.Season{}, err
	}
	return create(ctx, r.c, seasonMapping, "create season", s)
}

func (r *SeasonRepository) GetSeason(ctx context.Context, id int64) (season.Season, bool, error) {
	return get(ctx, r.c, seasonMapping, "get season", qb.Eq("id", id))
}

func (r *SeasonRepository) ListSeasons(ctx context.Context, filter season.Filter) ([]season.Season, error) {
	var conds []qb.Condition
	if filter.TeamID != 0 {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	if filter.ActiveOnly {
		conds = append(conds, qb.Eq("is_active", true))
	}
	return list(ctx, r.c, seasonMapping, "list seasons", filter.Limit, conds...)
}

func (r *SeasonRepository) UpdateSeason(ctx context.Context, id int64, patch season.Patch) (season.Season, bool, error) {
	return update(ctx, r.c, seasonMapping, "update season", id, func(s *season.Season) error {
		patch.Apply(s)
		s.StartDate, s.EndDate = s.StartDate.UTC(), s.EndDate.UTC()
		return s.Validate()
	})
}

// ActivateSeason deactivates the team's other seasons and activates id in
// one transaction.
func (r *SeasonRepository) ActivateSeason(ctx context.Context, id int64) (season.Season, bool, error) {
	var (
		out   season.Season
		found bool
	)
	err := r.c.inTx(ctx, "activate season", func(ctx context.Context, tx *sqlx.Tx) error {
		target, ok, err := getOne(ctx, tx, seasonMapping, qb.Eq("id", id))
		if err != nil || !ok {
			return err
		}
		found = true

		query, args, err := qb.Update(seasonMapping.table).
			Set("is_active", false).
			Where(
				qb.Eq("team_id", target.TeamID),
				qb.Eq("is_active", true),
				qb.Expr("id <> ?", id),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build deactivate seasons query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("deactivate seasons: %w", err)
		}

		out, _, err = updateLocked(ctx, tx, seasonMapping, id, func(s *season.Season) error {
			s.IsActive = true
			return nil
		})
		return err
	})
	if err != nil {
		return season.Season{}, found, err
	}
	return out, found, nil
}

// DeleteSeason refuses with false while a classification row points at the
// season. The season row is locked first so no classification can attach
// between the check and the delete; matches are detached by the schema.
func (r *SeasonRepository) DeleteSeason(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := r.c.inTx(ctx, "delete season", func(ctx context.Context, tx *sqlx.Tx) error {
		query, args, err := qb.Select("id").From(seasonMapping.table).
			Where(qb.Eq("id", id)).
			Suffix("FOR UPDATE").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock season query: %w", err)
		}
		var locked []int64
		if err := tx.SelectContext(ctx, &locked, query, args...); err != nil {
			return fmt.Errorf("lock season: %w", err)
		}
		if len(locked) == 0 {
			return nil
		}

		query, args, err = qb.Select("COUNT(*)").From(classificationMapping.table).
			Where(qb.Eq("season_id", id)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build season guard query: %w", err)
		}
		var referencing int
		if err := tx.GetContext(ctx, &referencing, query, args...); err != nil {
			return fmt.Errorf("season guard: %w", err)
		}
		if referencing > 0 {
			r.c.logger.InfoContext(ctx, "season delete refused", "season_id", id, "classifications", referencing)
			return nil
		}

		removed, err = deleteWhere(ctx, tx, seasonMapping.table, qb.Eq("id", id))
		return err
	})
	return removed, err
}

type ClassificationRepository struct {
	c *conn
}

func (r *ClassificationRepository) CreateClassification(ctx context.Context, c classification.Classification) (classification.Classification, error) {
	c.ExternalTeamName = strings.TrimSpace(c.ExternalTeamName)
	c.UpdatedAt = r.c.now()
	if err := c.Validate(); err != nil {
		return classification.Classification{}, err
	}
	return create(ctx, r.c, classificationMapping, "create classification", c)
}

func (r *ClassificationRepository) GetClassification(ctx context.Context, id int64) (classification.Classification, bool, error) {
	return get(ctx, r.c, classificationMapping, "get classification", qb.Eq("id", id))
}

func (r *ClassificationRepository) ListClassifications(ctx context.Context, filter classification.Filter) ([]classification.Classification, error) {
	var conds []qb.Condition
	if filter.TeamID != 0 {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	if filter.SeasonID != nil {
		conds = append(conds, qb.Eq("season_id", *filter.SeasonID))
	}
	return list(ctx, r.c, classificationMapping, "list classifications", filter.Limit, conds...)
}

func (r *ClassificationRepository) UpdateClassification(ctx context.Context, id int64, patch classification.Patch) (classification.Classification, bool, error) {
	return update(ctx, r.c, classificationMapping, "update classification", id, func(c *classification.Classification) error {
		patch.Apply(c)
		c.ExternalTeamName = strings.TrimSpace(c.ExternalTeamName)
		c.UpdatedAt = r.c.now()
		return c.Validate()
	})
}

func (r *ClassificationRepository) DeleteClassification(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, r.c, classificationMapping.table, "delete classification", qb.Eq("id", id))
}
