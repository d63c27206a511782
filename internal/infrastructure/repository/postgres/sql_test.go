package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/riskibarqy/teamhub/internal/domain/lineup"
)

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation team_lineups does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("matches by 26000 code", func(t *testing.T) {
		err := fakeErr("pq: prepared statement missing (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for 26000 prepared statement error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation team_lineups does not exist")
		if isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})

	if isStatementRetryable(nil) {
		t.Fatalf("nil must not be retryable")
	}
}

func TestNullHelpers(t *testing.T) {
	t.Run("int64", func(t *testing.T) {
		if got := nullInt64Ptr(nullableInt64(nil)); got != nil {
			t.Fatalf("expected nil, got %d", *got)
		}
		v := int64(42)
		got := nullInt64Ptr(nullableInt64(&v))
		if got == nil || *got != 42 {
			t.Fatalf("expected 42, got %v", got)
		}
		if got == &v {
			t.Fatalf("expected a fresh pointer")
		}
	})

	t.Run("int", func(t *testing.T) {
		if nullableInt(nil).Valid {
			t.Fatalf("expected invalid NullInt32")
		}
		v := 90
		got := nullIntPtr(nullableInt(&v))
		if got == nil || *got != 90 {
			t.Fatalf("expected 90, got %v", got)
		}
	})

	t.Run("time is stored in utc", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)
		v := time.Date(2026, 3, 14, 16, 30, 0, 0, jakarta)
		nt := nullableTime(&v)
		if nt.Time.Location() != time.UTC {
			t.Fatalf("expected utc, got %s", nt.Time.Location())
		}
		got := nullTimePtr(nt)
		if got == nil || !got.Equal(v) {
			t.Fatalf("expected %s, got %v", v, got)
		}
		if nullTimePtr(sql.NullTime{}) != nil {
			t.Fatalf("expected nil for null time")
		}
	})

	t.Run("float", func(t *testing.T) {
		if nullFloatPtr(nullableFloat(nil)) != nil {
			t.Fatalf("expected nil")
		}
		v := 7.5
		got := nullFloatPtr(nullableFloat(&v))
		if got == nil || *got != 7.5 {
			t.Fatalf("expected 7.5, got %v", got)
		}
	})
}

func TestJSONColumn(t *testing.T) {
	t.Run("value is a string", func(t *testing.T) {
		col := jsonColumn[[]int64]{V: []int64{3, 5}}
		v, err := col.Value()
		if err != nil {
			t.Fatalf("value: %v", err)
		}
		s, ok := v.(string)
		if !ok {
			t.Fatalf("expected string driver value, got %T", v)
		}
		if s != "[3,5]" {
			t.Fatalf("unexpected json: %s", s)
		}
	})

	t.Run("scans bytes and strings", func(t *testing.T) {
		var col jsonColumn[[]lineup.Slot]
		if err := col.Scan([]byte(`[{"team_member_id":7,"position":"GK","x":50,"y":5}]`)); err != nil {
			t.Fatalf("scan bytes: %v", err)
		}
		if len(col.V) != 1 || col.V[0].TeamMemberID != 7 || col.V[0].Position != "GK" {
			t.Fatalf("unexpected slots: %+v", col.V)
		}

		var subs jsonColumn[[]int64]
		if err := subs.Scan(`[1,2]`); err != nil {
			t.Fatalf("scan string: %v", err)
		}
		if len(subs.V) != 2 || subs.V[1] != 2 {
			t.Fatalf("unexpected substitutes: %v", subs.V)
		}
	})

	t.Run("null resets value", func(t *testing.T) {
		col := jsonColumn[[]int64]{V: []int64{1}}
		if err := col.Scan(nil); err != nil {
			t.Fatalf("scan nil: %v", err)
		}
		if col.V != nil {
			t.Fatalf("expected nil, got %v", col.V)
		}
	})

	t.Run("rejects other types", func(t *testing.T) {
		var col jsonColumn[[]int64]
		if err := col.Scan(12); err == nil {
			t.Fatalf("expected error for int source")
		}
	})
}

func TestMatchLineupMapping_NeverReturnsNilSlices(t *testing.T) {
	got := matchLineupMapping.toDomain(matchLineupTableModel{ID: 1, MatchID: 2, Formation: "4-4-2"})
	if got.Starters == nil || got.Substitutes == nil {
		t.Fatalf("expected empty slices, got %+v", got)
	}
	row := matchLineupMapping.toRow(got)
	if row.Substitutes.V == nil || row.Starters.V == nil {
		t.Fatalf("expected empty slices in row, got %+v", row)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
