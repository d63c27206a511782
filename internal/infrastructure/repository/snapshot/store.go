// Package snapshot is the process-local backend: every collection lives in
// memory and is rewritten to its own JSON file after each mutation.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/teamhub/internal/domain/announcement"
	"github.com/riskibarqy/teamhub/internal/domain/classification"
	"github.com/riskibarqy/teamhub/internal/domain/event"
	"github.com/riskibarqy/teamhub/internal/domain/invitation"
	"github.com/riskibarqy/teamhub/internal/domain/lineup"
	"github.com/riskibarqy/teamhub/internal/domain/match"
	"github.com/riskibarqy/teamhub/internal/domain/playerstat"
	"github.com/riskibarqy/teamhub/internal/domain/season"
	"github.com/riskibarqy/teamhub/internal/domain/session"
	"github.com/riskibarqy/teamhub/internal/domain/store"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/team"
	"github.com/riskibarqy/teamhub/internal/domain/user"
	"github.com/riskibarqy/teamhub/internal/platform/joincode"
	"github.com/riskibarqy/teamhub/internal/platform/logging"
)

const (
	defaultJoinCodeAttempts = 10
	defaultLoadWorkers      = 4
)

type Options struct {
	Dir    string
	Clock  clockwork.Clock
	Logger *logging.Logger

	JoinCodes        joincode.Generator
	JoinCodeAttempts int

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	// LoadWorkers bounds how many snapshot files are decoded at once.
	LoadWorkers int
}

// Store implements store.Repository.
//
// structure guards relationships between collections: writes that check a
// parent exists hold it shared, deletes that cascade hold it exclusively, so
// a parent cannot disappear between the check and the insert and two
// cascades never interleave. Each collection additionally serializes its
// own mutations and file rewrites.
type Store struct {
	clock     clockwork.Clock
	logger    *logging.Logger
	disk      *disk
	joinCodes joincode.Generator
	attempts  int

	structure sync.RWMutex

	users           *collection[user.User]
	teams           *collection[team.Team]
	members         *collection[team.Member]
	invitations     *collection[invitation.Invitation]
	announcements   *collection[announcement.Announcement]
	seasons         *collection[season.Season]
	classifications *collection[classification.Classification]
	matches         *collection[match.Match]
	substitutions   *collection[match.Substitution]
	goals           *collection[match.Goal]
	cards           *collection[match.Card]
	photos          *collection[match.Photo]
	playerStats     *collection[playerstat.Stat]
	events          *collection[event.Event]
	attendance      *collection[event.Attendance]
	teamLineups     *collection[lineup.TeamLineup]
	matchLineups    *collection[lineup.MatchLineup]

	tables map[store.Family]table

	sessions *sessionStore
}

var _ store.Repository = (*Store)(nil)

// Open loads every snapshot under opts.Dir. Missing files start empty; a
// file that cannot be decoded fails the whole open.
func Open(ctx context.Context, opts Options) (*Store, error) {
	d, err := newDisk(opts.Dir)
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.JoinCodes == nil {
		opts.JoinCodes = joincode.NewRandomGenerator()
	}
	if opts.JoinCodeAttempts <= 0 {
		opts.JoinCodeAttempts = defaultJoinCodeAttempts
	}
	if opts.LoadWorkers <= 0 {
		opts.LoadWorkers = defaultLoadWorkers
	}

	s := &Store{
		clock:     opts.Clock,
		logger:    opts.Logger.Named("snapshot"),
		disk:      d,
		joinCodes: opts.JoinCodes,
		attempts:  opts.JoinCodeAttempts,
	}
	s.initCollections()
	s.sessions = newSessionStore(opts.Clock, opts.SessionTTL, opts.SessionSweepInterval)

	if err := s.loadAll(ctx, opts.LoadWorkers); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initCollections() {
	s.users = newCollection(store.FamilyUser, s.disk, userSchema())
	s.teams = newCollection(store.FamilyTeam, s.disk, teamSchema())
	s.members = newCollection(store.FamilyTeamMember, s.disk, memberSchema())
	s.invitations = newCollection(store.FamilyInvitation, s.disk, invitationSchema())
	s.announcements = newCollection(store.FamilyAnnouncement, s.disk, announcementSchema())
	s.seasons = newCollection(store.FamilySeason, s.disk, seasonSchema())
	s.classifications = newCollection(store.FamilyClassification, s.disk, classificationSchema())
	s.matches = newCollection(store.FamilyMatch, s.disk, matchSchema())
	s.substitutions = newCollection(store.FamilySubstitution, s.disk, substitutionSchema())
	s.goals = newCollection(store.FamilyGoal, s.disk, goalSchema())
	s.cards = newCollection(store.FamilyCard, s.disk, cardSchema())
	s.photos = newCollection(store.FamilyPhoto, s.disk, photoSchema())
	s.playerStats = newCollection(store.FamilyPlayerStat, s.disk, playerStatSchema())
	s.events = newCollection(store.FamilyEvent, s.disk, eventSchema())
	s.attendance = newCollection(store.FamilyAttendance, s.disk, attendanceSchema())
	s.teamLineups = newCollection(store.FamilyTeamLineup, s.disk, teamLineupSchema())
	s.matchLineups = newCollection(store.FamilyMatchLineup, s.disk, matchLineupSchema())

	s.tables = map[store.Family]table{
		store.FamilyUser:           s.users,
		store.FamilyTeam:           s.teams,
		store.FamilyTeamMember:     s.members,
		store.FamilyInvitation:     s.invitations,
		store.FamilyAnnouncement:   s.announcements,
		store.FamilySeason:         s.seasons,
		store.FamilyClassification: s.classifications,
		store.FamilyMatch:          s.matches,
		store.FamilySubstitution:   s.substitutions,
		store.FamilyGoal:           s.goals,
		store.FamilyCard:           s.cards,
		store.FamilyPhoto:          s.photos,
		store.FamilyPlayerStat:     s.playerStats,
		store.FamilyEvent:          s.events,
		store.FamilyAttendance:     s.attendance,
		store.FamilyTeamLineup:     s.teamLineups,
		store.FamilyMatchLineup:    s.matchLineups,
	}
}

func (s *Store) SessionStore() session.Store {
	return s.sessions
}

// Ping reports whether the snapshot directory is still writable.
func (s *Store) Ping(context.Context) error {
	probe := s.disk.path("_ping")
	if err := writeFileAtomic(probe, []byte("ok")); err != nil {
		return storeerr.Internal(fmt.Errorf("snapshot dir not writable: %w", err), "ping")
	}
	return nil
}

// Close is a no-op: every mutation is already on disk.
func (s *Store) Close() error {
	return nil
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// requireRef fails with ReferenceIntegrity when id is not a live row of family.
func (s *Store) requireRef(fk string, family store.Family, id int64) error {
	if id == 0 || !s.tables[family].exists(id) {
		return storeerr.MissingReference(fk)
	}
	return nil
}

func (s *Store) requireOptRef(fk string, family store.Family, id *int64) error {
	if id == nil {
		return nil
	}
	return s.requireRef(fk, family, *id)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// updateChecked reports absence before a failed reference check, so an
// update of a missing row is never an error.
func updateChecked[T any](c *collection[T], id int64, refErr error, mutate func(*T) error, conflict conflictFunc[T]) (T, bool, error) {
	if refErr != nil {
		var zero T
		if !c.exists(id) {
			return zero, false, nil
		}
		return zero, true, refErr
	}
	return c.update(id, mutate, conflict)
}
