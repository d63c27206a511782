package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/match"
	"github.com/riskibarqy/teamhub/internal/domain/playerstat"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

type matchTableModel struct {
	ID           int64         `db:"id,readonly"`
	TeamID       int64         `db:"team_id"`
	SeasonID     sql.NullInt64 `db:"season_id"`
	Opponent     string        `db:"opponent"`
	Location     string        `db:"location"`
	IsHome       bool          `db:"is_home"`
	ScheduledAt  time.Time     `db:"scheduled_at"`
	Status       string        `db:"status"`
	GoalsFor     sql.NullInt32 `db:"goals_for"`
	GoalsAgainst sql.NullInt32 `db:"goals_against"`
	Notes        string        `db:"notes"`
	CreatedAt    time.Time     `db:"created_at,insertonly"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

var matchMapping = mapping[matchTableModel, match.Match]{
	table: string(store.FamilyMatch),
	order: []string{"scheduled_at", "id"},
	toDomain: func(row matchTableModel) match.Match {
		return match.Match{
			ID:           row.ID,
			TeamID:       row.TeamID,
			SeasonID:     nullInt64Ptr(row.SeasonID),
			Opponent:     row.Opponent,
			Location:     row.Location,
			IsHome:       row.IsHome,
			ScheduledAt:  row.ScheduledAt.UTC(),
			Status:       match.Status(row.Status),
			GoalsFor:     nullIntPtr(row.GoalsFor),
			GoalsAgainst: nullIntPtr(row.GoalsAgainst),
			Notes:        row.Notes,
			CreatedAt:    row.CreatedAt.UTC(),
			UpdatedAt:    row.UpdatedAt.UTC(),
		}
	},
	toRow: func(m match.Match) matchTableModel {
		return matchTableModel{
			ID:           m.ID,
			TeamID:       m.TeamID,
			SeasonID:     nullableInt64(m.SeasonID),
			Opponent:     m.Opponent,
			Location:     m.Location,
			IsHome:       m.IsHome,
			ScheduledAt:  m.ScheduledAt,
			Status:       string(m.Status),
			GoalsFor:     nullableInt(m.GoalsFor),
			GoalsAgainst: nullableInt(m.GoalsAgainst),
			Notes:        m.Notes,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		}
	},
}

type substitutionTableModel struct {
	ID          int64 `db:"id,readonly"`
	MatchID     int64 `db:"match_id"`
	PlayerInID  int64 `db:"player_in_id"`
	PlayerOutID int64 `db:"player_out_id"`
	Minute      int   `db:"minute"`
}

var substitutionMapping = mapping[substitutionTableModel, match.Substitution]{
	table: string(store.FamilySubstitution),
	toDomain: func(row substitutionTableModel) match.Substitution {
		return match.Substitution(row)
	},
	toRow: func(s match.Substitution) substitutionTableModel {
		return substitutionTableModel(s)
	},
}

type goalTableModel struct {
	ID       int64         `db:"id,readonly"`
	MatchID  int64         `db:"match_id"`
	ScorerID sql.NullInt64 `db:"scorer_id"`
	AssistID sql.NullInt64 `db:"assist_id"`
	Minute   int           `db:"minute"`
	OwnGoal  bool          `db:"own_goal"`
}

var goalMapping = mapping[goalTableModel, match.Goal]{
	table: string(store.FamilyGoal),
	toDomain: func(row goalTableModel) match.Goal {
		return match.Goal{
			ID:       row.ID,
			MatchID:  row.MatchID,
			ScorerID: nullInt64Ptr(row.ScorerID),
			AssistID: nullInt64Ptr(row.AssistID),
			Minute:   row.Minute,
			OwnGoal:  row.OwnGoal,
		}
	},
	toRow: func(g match.Goal) goalTableModel {
		return goalTableModel{
			ID:       g.ID,
			MatchID:  g.MatchID,
			ScorerID: nullableInt64(g.ScorerID),
			AssistID: nullableInt64(g.AssistID),
			Minute:   g.Minute,
			OwnGoal:  g.OwnGoal,
		}
	},
}

type cardTableModel struct {
	ID           int64  `db:"id,readonly"`
	MatchID      int64  `db:"match_id"`
	TeamMemberID int64  `db:"team_member_id"`
	Type         string `db:"type"`
	Minute       int    `db:"minute"`
}

var cardMapping = mapping[cardTableModel, match.Card]{
	table: string(store.FamilyCard),
	toDomain: func(row cardTableModel) match.Card {
		return match.Card{
			ID:           row.ID,
			MatchID:      row.MatchID,
			TeamMemberID: row.TeamMemberID,
			Type:         match.CardType(row.Type),
			Minute:       row.Minute,
		}
	},
	toRow: func(c match.Card) cardTableModel {
		return cardTableModel{
			ID:           c.ID,
			MatchID:      c.MatchID,
			TeamMemberID: c.TeamMemberID,
			Type:         string(c.Type),
			Minute:       c.Minute,
		}
	},
}

type photoTableModel struct {
	ID         int64         `db:"id,readonly"`
	MatchID    int64         `db:"match_id"`
	URL        string        `db:"url"`
	Caption    string        `db:"caption"`
	UploadedBy sql.NullInt64 `db:"uploaded_by"`
	CreatedAt  time.Time     `db:"created_at,insertonly"`
}

var photoMapping = mapping[photoTableModel, match.Photo]{
	table: string(store.FamilyPhoto),
	toDomain: func(row photoTableModel) match.Photo {
		return match.Photo{
			ID:         row.ID,
			MatchID:    row.MatchID,
			URL:        row.URL,
			Caption:    row.Caption,
			UploadedBy: nullInt64Ptr(row.UploadedBy),
			CreatedAt:  row.CreatedAt.UTC(),
		}
	},
	toRow: func(p match.Photo) photoTableModel {
		return photoTableModel{
			ID:         p.ID,
			MatchID:    p.MatchID,
			URL:        p.URL,
			Caption:    p.Caption,
			UploadedBy: nullableInt64(p.UploadedBy),
			CreatedAt:  p.CreatedAt,
		}
	},
}

type playerStatTableModel struct {
	ID            int64           `db:"id,readonly"`
	MatchID       int64           `db:"match_id"`
	TeamMemberID  int64           `db:"team_member_id"`
	Goals         int             `db:"goals"`
	Assists       int             `db:"assists"`
	YellowCards   int             `db:"yellow_cards"`
	RedCards      int             `db:"red_cards"`
	MinutesPlayed int             `db:"minutes_played"`
	Rating        sql.NullFloat64 `db:"rating"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

var playerStatMapping = mapping[playerStatTableModel, playerstat.Stat]{
	table: string(store.FamilyPlayerStat),
	toDomain: func(row playerStatTableModel) playerstat.Stat {
		return playerstat.Stat{
			ID:            row.ID,
			MatchID:       row.MatchID,
			TeamMemberID:  row.TeamMemberID,
			Goals:         row.Goals,
			Assists:       row.Assists,
			YellowCards:   row.YellowCards,
			RedCards:      row.RedCards,
			MinutesPlayed: row.MinutesPlayed,
			Rating:        nullFloatPtr(row.Rating),
			UpdatedAt:     row.UpdatedAt.UTC(),
		}
	},
	toRow: func(s playerstat.Stat) playerStatTableModel {
		return playerStatTableModel{
			ID:            s.ID,
			MatchID:       s.MatchID,
			TeamMemberID:  s.TeamMemberID,
			Goals:         s.Goals,
			Assists:       s.Assists,
			YellowCards:   s.YellowCards,
			RedCards:      s.RedCards,
			MinutesPlayed: s.MinutesPlayed,
			Rating:        nullableFloat(s.Rating),
			UpdatedAt:     s.UpdatedAt,
		}
	},
}
