package httpapi

import (
	"net/http"

	"github.com/riskibarqy/teamhub/internal/domain/session"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler, sessions session.Store) {
	mux.Handle("GET /v1/session", RequireSession(sessions, http.HandlerFunc(handler.GetSession)))
}
