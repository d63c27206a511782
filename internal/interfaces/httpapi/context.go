package httpapi

import (
	"context"

	"github.com/riskibarqy/teamhub/internal/domain/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

func withSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func sessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(session.Session)
	return s, ok
}
