package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("create team member: %w", storeerr.Conflict("team_member", "team member already exists")))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "ALREADY_EXISTS" {
		t.Fatalf("expected error status ALREADY_EXISTS, got %v", errorObj["status"])
	}
	if got, _ := errorObj["message"].(string); got != "create team member: team member already exists" {
		t.Fatalf("unexpected message: %v", errorObj["message"])
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, storeerr.Internal(errors.New("dial tcp 10.0.0.5:5432"), "list teams"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != "internal server error" {
		t.Fatalf("expected generic message, got %v", errorObj["message"])
	}
}

func TestMapError_FollowsStoreKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storeerr.NotFound("team not found"), http.StatusNotFound},
		{"conflict", storeerr.Conflict("email", ""), http.StatusConflict},
		{"reference", storeerr.MissingReference("team_id"), http.StatusConflict},
		{"integrity", storeerr.Integrity("ends_at", ""), http.StatusConflict},
		{"required", storeerr.Required("name"), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: no session", ErrUnauthorized), http.StatusUnauthorized},
		{"unavailable", fmt.Errorf("%w: ping failed", ErrDependencyUnavailable), http.StatusServiceUnavailable},
		{"foreign", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(tc.err)
			if got.HTTPStatus != tc.want {
				t.Fatalf("status=%d want=%d", got.HTTPStatus, tc.want)
			}
			if got.HTTPStatus != http.StatusUnauthorized && got.HTTPStatus != http.StatusServiceUnavailable && got.HTTPStatus != storeerr.HTTPStatus(tc.err) {
				t.Fatalf("envelope status %d disagrees with storeerr status %d", got.HTTPStatus, storeerr.HTTPStatus(tc.err))
			}
		})
	}
}
