package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/team"
	"github.com/riskibarqy/teamhub/internal/domain/user"
	"github.com/riskibarqy/teamhub/internal/platform/logging"
)

var testEpoch = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type scriptedCodes struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (g *scriptedCodes) NewCode() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	code := g.codes[g.next%len(g.codes)]
	g.next++
	return code, nil
}

type fixture struct {
	dir   string
	clock *clockwork.FakeClock
	store *Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{dir: t.TempDir(), clock: clockwork.NewFakeClockAt(testEpoch)}
	f.store = f.open(t)
	return f
}

func (f *fixture) open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{
		Dir:    f.dir,
		Clock:  f.clock,
		Logger: logging.NewNop(),
	})
	require.NoError(t, err)
	return s
}

// reopen simulates a process restart on the same directory.
func (f *fixture) reopen(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.Close())
	f.store = f.open(t)
}

func mustUser(t *testing.T, s *Store, name string) user.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), user.User{Username: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u
}

func mustTeam(t *testing.T, s *Store, name string, createdBy *int64) team.Team {
	t.Helper()
	tm, err := s.CreateTeam(context.Background(), team.Team{Name: name, CreatedBy: createdBy})
	require.NoError(t, err)
	return tm
}

func requireKind(t *testing.T, err error, kind storeerr.Kind) *storeerr.Error {
	t.Helper()
	require.Error(t, err)
	se, ok := storeerr.As(err)
	require.True(t, ok, "expected storeerr, got %T: %v", err, err)
	require.Equal(t, kind, se.Kind, "unexpected kind for %v", err)
	return se
}

func TestCreateUser_DuplicateUsernameConflicts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	first := mustUser(t, f.store, "ana")

	_, err := f.store.CreateUser(ctx, user.User{Username: "ana", Email: "other@example.com"})
	se := requireKind(t, err, storeerr.KindConflict)
	assert.Equal(t, "username already exists", se.Error())
	assert.Equal(t, 409, se.HTTPStatus())

	_, err = f.store.CreateUser(ctx, user.User{Username: "bea", Email: "  ANA@Example.com "})
	requireKind(t, err, storeerr.KindConflict)

	got, ok, err := f.store.GetUser(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got)

	users, err := f.store.ListUsers(ctx, user.Filter{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUser_RequiredField(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.store.CreateUser(context.Background(), user.User{Email: "x@example.com"})
	se := requireKind(t, err, storeerr.KindRequiredField)
	assert.Equal(t, "username", se.Field)
	assert.Equal(t, 400, se.HTTPStatus())
}

func TestIDsAreNeverReused(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		mustUser(t, f.store, name)
	}
	ok, err := f.store.DeleteUser(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)

	u4 := mustUser(t, f.store, "u4")
	assert.Equal(t, int64(4), u4.ID)

	ok, err = f.store.DeleteUser(ctx, 4)
	require.NoError(t, err)
	require.True(t, ok)

	f.reopen(t)
	u5 := mustUser(t, f.store, "u5")
	assert.Equal(t, int64(5), u5.ID, "tail id freed before restart must not come back")
}

func TestRestartRestoresLastPersistedState(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	creator := mustUser(t, f.store, "owner")
	var created []team.Team
	for _, name := range []string{"Lions", "Tigers", "Bears"} {
		created = append(created, mustTeam(t, f.store, name, &creator.ID))
		f.clock.Advance(time.Minute)
	}
	_, _, err := f.store.UpdateTeam(ctx, created[1].ID, team.Patch{Description: ptr("updated")})
	require.NoError(t, err)
	created[1], _, _ = f.store.GetTeam(ctx, created[1].ID)

	f.reopen(t)

	teams, err := f.store.ListTeams(ctx, team.Filter{})
	require.NoError(t, err)
	require.Len(t, teams, len(created))
	for i := range created {
		assert.Equal(t, created[i], teams[i])
		assert.True(t, created[i].CreatedAt.Equal(teams[i].CreatedAt))
	}

	next := mustTeam(t, f.store, "Wolves", nil)
	assert.Greater(t, next.ID, created[len(created)-1].ID)
}

func TestOpen_MissingAndCorruptSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("missing files start empty at id 1", func(t *testing.T) {
		f := newFixture(t)
		u := mustUser(t, f.store, "first")
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("corrupt file fails open", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "teams.json"), []byte("[{not json"), 0o644))
		_, err := Open(context.Background(), Options{Dir: dir, Logger: logging.NewNop()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "teams")
	})

	t.Run("hand written snapshot sets next id past max", func(t *testing.T) {
		dir := t.TempDir()
		raw := `[{"id":7,"username":"old","email":"old@example.com","created_at":"2025-01-02T03:04:05Z","updated_at":"2025-01-02T03:04:05Z"}]`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(raw), 0o644))

		s, err := Open(context.Background(), Options{Dir: dir, Logger: logging.NewNop()})
		require.NoError(t, err)
		old, ok, err := s.GetUserByUsername(context.Background(), "old")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), old.CreatedAt.UTC())

		u := mustUser(t, s, "new")
		assert.Equal(t, int64(8), u.ID)
	})
}

func TestFailedWriteRollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// A non-empty directory at the snapshot path makes the rename fail.
	blocker := filepath.Join(f.dir, "users.json")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "keep"), 0o755))

	_, err := f.store.CreateUser(ctx, user.User{Username: "ghost", Email: "ghost@example.com"})
	requireKind(t, err, storeerr.KindInternal)

	_, ok, err := f.store.GetUserByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateTeam_JoinCodes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("caller supplied code is normalized and kept", func(t *testing.T) {
		f := newFixture(t)
		tm, err := f.store.CreateTeam(ctx, team.Team{Name: "A", JoinCode: "ab23cd"})
		require.NoError(t, err)
		assert.Equal(t, "AB23CD", tm.JoinCode)

		_, err = f.store.CreateTeam(ctx, team.Team{Name: "B", JoinCode: "AB23CD"})
		se := requireKind(t, err, storeerr.KindConflict)
		assert.Equal(t, "join code already exists", se.Error())

		got, ok, err := f.store.GetTeamByJoinCode(ctx, " ab23cd ")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tm.ID, got.ID)
	})

	t.Run("invalid code is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.CreateTeam(ctx, team.Team{Name: "A", JoinCode: "OO0011"})
		requireKind(t, err, storeerr.KindIntegrityOther)
	})

	t.Run("generated code retries past collisions", func(t *testing.T) {
		dir := t.TempDir()
		codes := &scriptedCodes{codes: []string{"AAAAAA", "AAAAAA", "BBBBBB"}}
		s, err := Open(ctx, Options{Dir: dir, JoinCodes: codes, JoinCodeAttempts: 3, Logger: logging.NewNop()})
		require.NoError(t, err)

		first, err := s.CreateTeam(ctx, team.Team{Name: "first"})
		require.NoError(t, err)
		assert.Equal(t, "AAAAAA", first.JoinCode)

		second, err := s.CreateTeam(ctx, team.Team{Name: "second"})
		require.NoError(t, err)
		assert.Equal(t, "BBBBBB", second.JoinCode)
	})

	t.Run("exhausted attempts conflict", func(t *testing.T) {
		dir := t.TempDir()
		codes := &scriptedCodes{codes: []string{"CCCCCC"}}
		s, err := Open(ctx, Options{Dir: dir, JoinCodes: codes, JoinCodeAttempts: 2, Logger: logging.NewNop()})
		require.NoError(t, err)

		_, err = s.CreateTeam(ctx, team.Team{Name: "first"})
		require.NoError(t, err)
		_, err = s.CreateTeam(ctx, team.Team{Name: "second"})
		requireKind(t, err, storeerr.KindConflict)
	})

	t.Run("regenerate keeps row and changes code", func(t *testing.T) {
		dir := t.TempDir()
		codes := &scriptedCodes{codes: []string{"DDDDDD", "EEEEEE"}}
		s, err := Open(ctx, Options{Dir: dir, JoinCodes: codes, Logger: logging.NewNop()})
		require.NoError(t, err)

		tm, err := s.CreateTeam(ctx, team.Team{Name: "first"})
		require.NoError(t, err)
		updated, ok, err := s.RegenerateJoinCode(ctx, tm.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "EEEEEE", updated.JoinCode)

		_, ok, err = s.RegenerateJoinCode(ctx, 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNotFoundIsNotAnError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, ok, err := f.store.GetTeam(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = f.store.UpdateTeam(ctx, 42, team.Patch{Name: ptr("x")})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.store.DeleteTeam(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = f.store.UpdateTeamMember(ctx, 42, team.MemberPatch{UserID: ptr(int64(77))})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	owner := mustUser(t, f.store, "owner")
	tm := mustTeam(t, f.store, "Lions", &owner.ID)

	*tm.CreatedBy = 999
	got, _, err := f.store.GetTeam(ctx, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, *got.CreatedBy)
}

func TestConcurrentWritesKeepIDsUnique(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	tm := mustTeam(t, f.store, "Lions", nil)

	const workers = 24
	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, DisplayName: "player"})
			if err != nil {
				errs <- err
				return
			}
			ids <- m.ID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Fatalf("create member: %v", err)
	}
	seen := make(map[int64]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)

	f.reopen(t)
	members, err := f.store.ListTeamMembers(ctx, team.MemberFilter{TeamID: tm.ID})
	require.NoError(t, err)
	assert.Len(t, members, workers)
}

func ptr[T any](v T) *T {
	return &v
}
