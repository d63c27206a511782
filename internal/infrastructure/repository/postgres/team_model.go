package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/team"
)

type teamTableModel struct {
	ID          int64         `db:"id,readonly"`
	Name        string        `db:"name"`
	Sport       string        `db:"sport"`
	Description string        `db:"description"`
	LogoURL     string        `db:"logo_url"`
	JoinCode    string        `db:"join_code"`
	CreatedBy   sql.NullInt64 `db:"created_by"`
	CreatedAt   time.Time     `db:"created_at,insertonly"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

var teamMapping = mapping[teamTableModel, team.Team]{
	table: string(store.FamilyTeam),
	toDomain: func(row teamTableModel) team.Team {
		return team.Team{
			ID:          row.ID,
			Name:        row.Name,
			Sport:       row.Sport,
			Description: row.Description,
			LogoURL:     row.LogoURL,
			JoinCode:    row.JoinCode,
			CreatedBy:   nullInt64Ptr(row.CreatedBy),
			CreatedAt:   row.CreatedAt.UTC(),
			UpdatedAt:   row.UpdatedAt.UTC(),
		}
	},
	toRow: func(t team.Team) teamTableModel {
		return teamTableModel{
			ID:          t.ID,
			Name:        t.Name,
			Sport:       t.Sport,
			Description: t.Description,
			LogoURL:     t.LogoURL,
			JoinCode:    t.JoinCode,
			CreatedBy:   nullableInt64(t.CreatedBy),
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
	},
}

type teamMemberTableModel struct {
	ID           int64         `db:"id,readonly"`
	TeamID       int64         `db:"team_id"`
	UserID       sql.NullInt64 `db:"user_id"`
	DisplayName  string        `db:"display_name"`
	Role         string        `db:"role"`
	JerseyNumber sql.NullInt32 `db:"jersey_number"`
	Position     string        `db:"position"`
	JoinedAt     time.Time     `db:"joined_at,insertonly"`
}

var memberMapping = mapping[teamMemberTableModel, team.Member]{
	table: string(store.FamilyTeamMember),
	toDomain: func(row teamMemberTableModel) team.Member {
		return team.Member{
			ID:           row.ID,
			TeamID:       row.TeamID,
			UserID:       nullInt64Ptr(row.UserID),
			DisplayName:  row.DisplayName,
			Role:         team.Role(row.Role),
			JerseyNumber: nullIntPtr(row.JerseyNumber),
			Position:     row.Position,
			JoinedAt:     row.JoinedAt.UTC(),
		}
	},
	toRow: func(m team.Member) teamMemberTableModel {
		return teamMemberTableModel{
			ID:           m.ID,
			TeamID:       m.TeamID,
			UserID:       nullableInt64(m.UserID),
			DisplayName:  m.DisplayName,
			Role:         string(m.Role),
			JerseyNumber: nullableInt(m.JerseyNumber),
			Position:     m.Position,
			JoinedAt:     m.JoinedAt,
		}
	},
}
