package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/teamhub/internal/domain/session"
	"github.com/riskibarqy/teamhub/internal/platform/logging"
)

type fakePinger struct {
	err   error
	calls atomic.Int32
}

func (p *fakePinger) Ping(context.Context) error {
	p.calls.Add(1)
	return p.err
}

type fakeSessions struct {
	entries map[string]session.Session
}

func (f *fakeSessions) Get(_ context.Context, sid string) (session.Session, bool, error) {
	s, ok := f.entries[sid]
	return s, ok, nil
}
func (f *fakeSessions) Set(_ context.Context, s session.Session) error {
	f.entries[s.ID] = s
	return nil
}
func (f *fakeSessions) Destroy(_ context.Context, sid string) error {
	delete(f.entries, sid)
	return nil
}
func (f *fakeSessions) Sweep(context.Context) (int, error) { return 0, nil }

func (f *fakeSessions) SweepInterval() time.Duration { return time.Minute }

func newTestRouter(pinger Pinger, sessions session.Store) http.Handler {
	handler := NewHandler(pinger, "snapshot", logging.NewNop())
	return NewRouter(handler, sessions, logging.NewNop(), []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakePinger{}, &fakeSessions{entries: map[string]session.Session{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		pinger := &fakePinger{}
		router := newTestRouter(pinger, &fakeSessions{entries: map[string]session.Session{}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, "snapshot", data["storage"])
		assert.Equal(t, int32(1), pinger.calls.Load())
	})

	t.Run("store down", func(t *testing.T) {
		router := newTestRouter(&fakePinger{err: errors.New("connection refused")}, &fakeSessions{entries: map[string]session.Session{}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		errObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
		assert.Equal(t, "UNAVAILABLE", errObj["status"])
	})
}

func TestGetSession(t *testing.T) {
	expires := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	sessions := &fakeSessions{entries: map[string]session.Session{
		"sid-1": {ID: "sid-1", Data: map[string]any{"user_id": float64(7)}, ExpiresAt: expires},
	}}
	router := newTestRouter(&fakePinger{}, sessions)

	t.Run("missing cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/session", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "nope"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("live session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, "sid-1", data["sid"])
		sess, _ := data["sess"].(map[string]any)
		assert.Equal(t, float64(7), sess["user_id"])
	})
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/session", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	assert.Equal(t, "internal server error", errObj["message"])
}
