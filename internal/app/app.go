package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/teamhub/internal/config"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/interfaces/httpapi"
	"github.com/riskibarqy/teamhub/internal/platform/logging"
)

func NewHTTPServer(cfg config.Config, repo store.Repository, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(repo, cfg.StorageBackend, logger)
	router := httpapi.NewRouter(handler, repo.SessionStore(), logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
