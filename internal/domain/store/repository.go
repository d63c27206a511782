// Package store composes the per-family contracts into the single repository
// the rest of the application depends on.
package store

import (
	"context"

	"github.com/riskibarqy/teamhub/internal/domain/announcement"
	"github.com/riskibarqy/teamhub/internal/domain/classification"
	"github.com/riskibarqy/teamhub/internal/domain/event"
	"github.com/riskibarqy/teamhub/internal/domain/invitation"
	"github.com/riskibarqy/teamhub/internal/domain/lineup"
	"github.com/riskibarqy/teamhub/internal/domain/match"
	"github.com/riskibarqy/teamhub/internal/domain/playerstat"
	"github.com/riskibarqy/teamhub/internal/domain/season"
	"github.com/riskibarqy/teamhub/internal/domain/session"
	"github.com/riskibarqy/teamhub/internal/domain/team"
	"github.com/riskibarqy/teamhub/internal/domain/user"
)

// Repository is implemented by every storage backend. Lookups report absence
// with a false flag; errors always belong to the storeerr taxonomy.
type Repository interface {
	user.Repository
	team.Repository
	team.MemberRepository
	invitation.Repository
	announcement.Repository
	season.Repository
	classification.Repository
	match.Repository
	match.DetailRepository
	playerstat.Repository
	event.Repository
	event.AttendanceRepository
	lineup.Repository

	// SessionStore is handed to the auth layer once at startup.
	SessionStore() session.Store
	Ping(ctx context.Context) error
	Close() error
}
