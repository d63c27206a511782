package storeerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind Kind
		want int
	}{
		{KindConflict, http.StatusConflict},
		{KindReferenceIntegrity, http.StatusConflict},
		{KindIntegrityOther, http.StatusConflict},
		{KindRequiredField, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.kind.HTTPStatus(); got != tc.want {
			t.Fatalf("%s: status=%d want=%d", tc.kind, got, tc.want)
		}
	}
}

func TestErrorIsMatchesSentinelOfKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create team member: %w", Conflict("team_member", "team member already exists"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected wrapped conflict to match ErrConflict")
	}
	if errors.Is(err, ErrReferenceIntegrity) {
		t.Fatalf("conflict must not match ErrReferenceIntegrity")
	}
	if got := HTTPStatus(err); got != http.StatusConflict {
		t.Fatalf("unexpected status: %d", got)
	}
	if err.Error() != "create team member: team member already exists" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("keeps taxonomy errors", func(t *testing.T) {
		in := Required("name")
		if got := Normalize(in, "create team"); got != in {
			t.Fatalf("expected same error back, got %v", got)
		}
	})

	t.Run("wraps foreign errors as internal", func(t *testing.T) {
		cause := errors.New("disk full")
		got := Normalize(cause, "write snapshot")
		if KindOf(got) != KindInternal {
			t.Fatalf("expected internal kind, got %s", KindOf(got))
		}
		if !errors.Is(got, cause) {
			t.Fatalf("expected cause to stay in chain")
		}
		if !errors.Is(got, ErrInternal) {
			t.Fatalf("expected ErrInternal match")
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if Normalize(nil, "noop") != nil {
			t.Fatalf("expected nil")
		}
	})
}

func TestDefaultMessages(t *testing.T) {
	t.Parallel()

	if got := Reference("team", "").Error(); got != "referenced team does not exist" {
		t.Fatalf("unexpected reference message: %q", got)
	}
	if got := Conflict("join_code", "").Error(); got != "join_code already exists" {
		t.Fatalf("unexpected conflict message: %q", got)
	}
	if got := MissingReference("team_id").Error(); got != "referenced team does not exist" {
		t.Fatalf("unexpected missing reference message: %q", got)
	}
	if got := MissingReference("team_member_id").Error(); got != "referenced team member does not exist" {
		t.Fatalf("unexpected missing reference message: %q", got)
	}
	if got := Required("email").Error(); got != "email is required" {
		t.Fatalf("unexpected required message: %q", got)
	}
}
