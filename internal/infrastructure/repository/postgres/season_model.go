package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/classification"
	"github.com/riskibarqy/teamhub/internal/domain/season"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

type seasonTableModel struct {
	ID        int64     `db:"id,readonly"`
	TeamID    int64     `db:"team_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at,insertonly"`
}

var seasonMapping = mapping[seasonTableModel, season.Season]{
	table: string(store.FamilySeason),
	toDomain: func(row seasonTableModel) season.Season {
		return season.Season{
			ID:        row.ID,
			TeamID:    row.TeamID,
			Name:      row.Name,
			StartDate: row.StartDate.UTC(),
			EndDate:   row.EndDate.UTC(),
			IsActive:  row.IsActive,
			CreatedAt: row.CreatedAt.UTC(),
		}
	},
	toRow: func(s season.Season) seasonTableModel {
		return seasonTableModel{
			ID:        s.ID,
			TeamID:    s.TeamID,
			Name:      s.Name,
			StartDate: s.StartDate,
			EndDate:   s.EndDate,
			IsActive:  s.IsActive,
			CreatedAt: s.CreatedAt,
		}
	},
}

type classificationTableModel struct {
	ID               int64         `db:"id,readonly"`
	TeamID           int64         `db:"team_id"`
	SeasonID         sql.NullInt64 `db:"season_id"`
	ExternalTeamName string        `db:"external_team_name"`
	Position         int           `db:"position"`
	Played           int           `db:"played"`
	Won              int           `db:"won"`
	Drawn            int           `db:"drawn"`
	Lost             int           `db:"lost"`
	GoalsFor         int           `db:"goals_for"`
	GoalsAgainst     int           `db:"goals_against"`
	Points           int           `db:"points"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

var classificationMapping = mapping[classificationTableModel, classification.Classification]{
	table: string(store.FamilyClassification),
	order: []string{"position", "id"},
	toDomain: func(row classificationTableModel) classification.Classification {
		return classification.Classification{
			ID:               row.ID,
			TeamID:           row.TeamID,
			SeasonID:         nullInt64Ptr(row.SeasonID),
			ExternalTeamName: row.ExternalTeamName,
			Position:         row.Position,
			Played:           row.Played,
			Won:              row.Won,
			Drawn:            row.Drawn,
			Lost:             row.Lost,
			GoalsFor:         row.GoalsFor,
			GoalsAgainst:     row.GoalsAgainst,
			Points:           row.Points,
			UpdatedAt:        row.UpdatedAt.UTC(),
		}
	},
	toRow: func(c classification.Classification) classificationTableModel {
		return classificationTableModel{
			ID:               c.ID,
			TeamID:           c.TeamID,
			SeasonID:         nullableInt64(c.SeasonID),
			ExternalTeamName: c.ExternalTeamName,
			Position:         c.Position,
			Played:           c.Played,
			Won:              c.Won,
			Drawn:            c.Drawn,
			Lost:             c.Lost,
			GoalsFor:         c.GoalsFor,
			GoalsAgainst:     c.GoalsAgainst,
			Points:           c.Points,
			UpdatedAt:        c.UpdatedAt,
		}
	},
}
