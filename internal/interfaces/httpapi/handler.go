package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/teamhub/internal/platform/logging"
	"github.com/riskibarqy/teamhub/internal/platform/resilience"
)

const defaultReadyTimeout = 2 * time.Second

// Pinger is the part of the store readiness depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store        Pinger
	backend      string
	logger       *logging.Logger
	readyTimeout time.Duration
	pings        resilience.SingleFlight[struct{}]
}

func NewHandler(store Pinger, backend string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:        store,
		backend:      backend,
		logger:       logger,
		readyTimeout: defaultReadyTimeout,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pings the store. Concurrent probes share one ping.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	_, shared, err := h.pings.Do("ping", func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.readyTimeout)
		defer cancel()
		return struct{}{}, h.store.Ping(pingCtx)
	})
	if err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "backend", h.backend, "shared", shared, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %s storage unreachable", ErrDependencyUnavailable, h.backend))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready", "storage": h.backend})
}

type sessionDTO struct {
	ID        string         `json:"sid"`
	Data      map[string]any `json:"sess"`
	ExpiresAt time.Time      `json:"expire"`
}

// GetSession echoes the session resolved by RequireSession.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	sess, ok := sessionFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: session is missing from request context", ErrUnauthorized))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, sessionDTO{ID: sess.ID, Data: sess.Data, ExpiresAt: sess.ExpiresAt})
}
