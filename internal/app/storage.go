package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/teamhub/internal/config"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/teamhub/internal/infrastructure/repository/snapshot"
	"github.com/riskibarqy/teamhub/internal/platform/logging"
)

// NewRepository opens the backend named by cfg.StorageBackend.
func NewRepository(ctx context.Context, cfg config.Config, clock clockwork.Clock, logger *logging.Logger) (store.Repository, error) {
	switch cfg.StorageBackend {
	case config.StorageSnapshot:
		repo, err := snapshot.Open(ctx, snapshot.Options{
			Dir:                  cfg.SnapshotDir,
			Clock:                clock,
			Logger:               logger,
			JoinCodeAttempts:     cfg.JoinCodeMaxAttempts,
			SessionTTL:           cfg.SessionTTL,
			SessionSweepInterval: cfg.SessionSweepInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		logger.Info("storage ready", "backend", cfg.StorageBackend, "dir", cfg.SnapshotDir)
		return repo, nil

	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo := postgres.New(db, postgres.Options{
			Clock:                clock,
			Logger:               logger,
			JoinCodeAttempts:     cfg.JoinCodeMaxAttempts,
			Breaker:              cfg.DBCircuit,
			SessionTTL:           cfg.SessionTTL,
			SessionSweepInterval: cfg.SessionSweepInterval,
		})
		logger.Info("storage ready", "backend", cfg.StorageBackend, "driver", cfg.DBDriver, "db", dbNameFromURL(cfg.DBURL))
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
