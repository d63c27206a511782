package postgres

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/teamhub/internal/domain/lineup"
	"github.com/riskibarqy/teamhub/internal/domain/store"
)

// jsonColumn stores a value in a JSONB column. Value hands the driver a
// string so lib/pq does not send it as bytea.
type jsonColumn[T any] struct {
	V T
}

func (c jsonColumn[T]) Value() (driver.Value, error) {
	s, err := sonic.MarshalString(c.V)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return s, nil
}

func (c *jsonColumn[T]) Scan(src any) error {
	var zero T
	switch v := src.(type) {
	case nil:
		c.V = zero
		return nil
	case []byte:
		return sonic.Unmarshal(v, &c.V)
	case string:
		return sonic.UnmarshalString(v, &c.V)
	default:
		return fmt.Errorf("scan json column: unsupported type %T", src)
	}
}

type teamLineupTableModel struct {
	ID        int64                     `db:"id,readonly"`
	TeamID    int64                     `db:"team_id"`
	Formation string                    `db:"formation"`
	Slots     jsonColumn[[]lineup.Slot] `db:"slots"`
	UpdatedAt time.Time                 `db:"updated_at"`
}

var teamLineupMapping = mapping[teamLineupTableModel, lineup.TeamLineup]{
	table: string(store.FamilyTeamLineup),
	toDomain: func(row teamLineupTableModel) lineup.TeamLineup {
		return lineup.TeamLineup{
			ID:        row.ID,
			TeamID:    row.TeamID,
			Formation: row.Formation,
			Slots:     nonNilSlots(row.Slots.V),
			UpdatedAt: row.UpdatedAt.UTC(),
		}
	},
	toRow: func(l lineup.TeamLineup) teamLineupTableModel {
		return teamLineupTableModel{
			ID:        l.ID,
			TeamID:    l.TeamID,
			Formation: l.Formation,
			Slots:     jsonColumn[[]lineup.Slot]{V: nonNilSlots(l.Slots)},
			UpdatedAt: l.UpdatedAt,
		}
	},
}

type matchLineupTableModel struct {
	ID          int64                     `db:"id,readonly"`
	MatchID     int64                     `db:"match_id"`
	Formation   string                    `db:"formation"`
	Starters    jsonColumn[[]lineup.Slot] `db:"starters"`
	Substitutes jsonColumn[[]int64]       `db:"substitutes"`
	UpdatedAt   time.Time                 `db:"updated_at"`
}

var matchLineupMapping = mapping[matchLineupTableModel, lineup.MatchLineup]{
	table: string(store.FamilyMatchLineup),
	toDomain: func(row matchLineupTableModel) lineup.MatchLineup {
		subs := row.Substitutes.V
		if subs == nil {
			subs = []int64{}
		}
		return lineup.MatchLineup{
			ID:          row.ID,
			MatchID:     row.MatchID,
			Formation:   row.Formation,
			Starters:    nonNilSlots(row.Starters.V),
			Substitutes: subs,
			UpdatedAt:   row.UpdatedAt.UTC(),
		}
	},
	toRow: func(l lineup.MatchLineup) matchLineupTableModel {
		subs := l.Substitutes
		if subs == nil {
			subs = []int64{}
		}
		return matchLineupTableModel{
			ID:          l.ID,
			MatchID:     l.MatchID,
			Formation:   l.Formation,
			Starters:    jsonColumn[[]lineup.Slot]{V: nonNilSlots(l.Starters)},
			Substitutes: jsonColumn[[]int64]{V: subs},
			UpdatedAt:   l.UpdatedAt,
		}
	},
}

func nonNilSlots(slots []lineup.Slot) []lineup.Slot {
	if slots == nil {
		return []lineup.Slot{}
	}
	return slots
}
