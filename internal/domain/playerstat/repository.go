package playerstat

import "context"

type Repository interface {
	CreatePlayerStat(ctx context.Context, s Stat) (Stat, error)
	GetPlayerStat(ctx context.Context, id int64) (Stat, bool, error)
	GetPlayerStatByMember(ctx context.Context, matchID, teamMemberID int64) (Stat, bool, error)
	ListPlayerStats(ctx context.Context, filter Filter) ([]Stat, error)
	UpdatePlayerStat(ctx context.Context, id int64, patch Patch) (Stat, bool, error)
	DeletePlayerStat(ctx context.Context, id int64) (bool, error)
}
