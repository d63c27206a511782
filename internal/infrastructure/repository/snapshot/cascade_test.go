package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/teamhub/internal/domain/announcement"
	"github.com/riskibarqy/teamhub/internal/domain/classification"
	"github.com/riskibarqy/teamhub/internal/domain/event"
	"github.com/riskibarqy/teamhub/internal/domain/invitation"
	"github.com/riskibarqy/teamhub/internal/domain/lineup"
	"github.com/riskibarqy/teamhub/internal/domain/match"
	"github.com/riskibarqy/teamhub/internal/domain/playerstat"
	"github.com/riskibarqy/teamhub/internal/domain/season"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/domain/team"
)

func TestExampleScenario_DeleteTeam(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	teamA, err := f.store.CreateTeam(ctx, team.Team{Name: "Team A", JoinCode: "AB23CD"})
	require.NoError(t, err)
	u1 := mustUser(t, f.store, "u1")
	member, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: teamA.ID, UserID: &u1.ID, Role: team.RoleAdmin})
	require.NoError(t, err)
	m1, err := f.store.CreateMatch(ctx, match.Match{TeamID: teamA.ID, Opponent: "Rivals", ScheduledAt: testEpoch.Add(48 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, match.StatusScheduled, m1.Status)

	ok, err := f.store.DeleteTeam(ctx, teamA.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, found, err := f.store.GetTeam(ctx, teamA.ID)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = f.store.GetTeamMember(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = f.store.GetMatch(ctx, m1.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = f.store.GetUser(ctx, u1.ID)
	require.NoError(t, err)
	assert.True(t, found, "deleting a team never deletes users")
}

func TestDeleteTeam_CascadeCompleteness(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	owner := mustUser(t, f.store, "owner")
	doomed := mustTeam(t, f.store, "Doomed", &owner.ID)
	survivor := mustTeam(t, f.store, "Survivor", &owner.ID)

	var members []team.Member
	for _, name := range []string{"keeper", "striker", "winger"} {
		m, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: doomed.ID, DisplayName: name})
		require.NoError(t, err)
		members = append(members, m)
	}
	keepMember, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: survivor.ID, UserID: &owner.ID})
	require.NoError(t, err)

	sea, err := f.store.CreateSeason(ctx, season.Season{TeamID: doomed.ID, Name: "2026", StartDate: testEpoch, EndDate: testEpoch.AddDate(0, 6, 0)})
	require.NoError(t, err)

	withLineup, err := f.store.CreateMatch(ctx, match.Match{TeamID: doomed.ID, SeasonID: &sea.ID, Opponent: "A", ScheduledAt: testEpoch})
	require.NoError(t, err)
	_, err = f.store.SaveMatchLineup(ctx, lineup.MatchLineup{
		MatchID:     withLineup.ID,
		Formation:   "4-4-2",
		Starters:    []lineup.Slot{{TeamMemberID: members[0].ID, Position: "GK", X: 50, Y: 5}},
		Substitutes: []int64{members[2].ID},
	})
	require.NoError(t, err)

	withGoals, err := f.store.CreateMatch(ctx, match.Match{TeamID: doomed.ID, Opponent: "B", ScheduledAt: testEpoch.Add(time.Hour)})
	require.NoError(t, err)
	for _, minute := range []int{10, 70} {
		_, err = f.store.CreateGoal(ctx, match.Goal{MatchID: withGoals.ID, ScorerID: &members[1].ID, Minute: minute})
		require.NoError(t, err)
	}
	_, err = f.store.CreateCard(ctx, match.Card{MatchID: withGoals.ID, TeamMemberID: members[2].ID, Type: match.CardYellow, Minute: 30})
	require.NoError(t, err)
	_, err = f.store.CreateSubstitution(ctx, match.Substitution{MatchID: withGoals.ID, PlayerInID: members[2].ID, PlayerOutID: members[1].ID, Minute: 60})
	require.NoError(t, err)
	_, err = f.store.CreatePhoto(ctx, match.Photo{MatchID: withGoals.ID, URL: "https://img.example.com/1.jpg"})
	require.NoError(t, err)
	_, err = f.store.CreatePlayerStat(ctx, playerstat.Stat{MatchID: withGoals.ID, TeamMemberID: members[1].ID, Goals: 2})
	require.NoError(t, err)

	ev, err := f.store.CreateEvent(ctx, event.Event{TeamID: doomed.ID, Title: "Training", StartsAt: testEpoch, EndsAt: testEpoch.Add(time.Hour)})
	require.NoError(t, err)
	_, err = f.store.SetAttendance(ctx, event.Attendance{EventID: ev.ID, UserID: owner.ID, Status: event.AttendanceAttending})
	require.NoError(t, err)

	_, err = f.store.CreateAnnouncement(ctx, announcement.Announcement{TeamID: doomed.ID, Title: "Kickoff moved"})
	require.NoError(t, err)
	_, err = f.store.CreateClassification(ctx, classification.Classification{TeamID: doomed.ID, SeasonID: &sea.ID, ExternalTeamName: "Rivals FC"})
	require.NoError(t, err)
	_, err = f.store.CreateInvitation(ctx, invitation.Invitation{TeamID: doomed.ID, Email: "new@example.com"})
	require.NoError(t, err)
	_, err = f.store.SaveTeamLineup(ctx, lineup.TeamLineup{TeamID: doomed.ID, Formation: "4-3-3"})
	require.NoError(t, err)

	ok, err := f.store.DeleteTeam(ctx, doomed.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Check after a restart as well, so every touched file was rewritten.
	for _, when := range []string{"in memory", "after restart"} {
		if when == "after restart" {
			f.reopen(t)
		}
		s := f.store

		ms, err := s.ListTeamMembers(ctx, team.MemberFilter{TeamID: doomed.ID})
		require.NoError(t, err)
		assert.Empty(t, ms, when)
		matches, err := s.ListMatches(ctx, match.Filter{TeamID: doomed.ID})
		require.NoError(t, err)
		assert.Empty(t, matches, when)
		for _, matchID := range []int64{withLineup.ID, withGoals.ID} {
			_, found, err := s.GetMatchLineup(ctx, matchID)
			require.NoError(t, err)
			assert.False(t, found, when)
			goals, err := s.ListGoals(ctx, match.DetailFilter{MatchID: matchID})
			require.NoError(t, err)
			assert.Empty(t, goals, when)
			cards, err := s.ListCards(ctx, match.DetailFilter{MatchID: matchID})
			require.NoError(t, err)
			assert.Empty(t, cards, when)
			subs, err := s.ListSubstitutions(ctx, match.DetailFilter{MatchID: matchID})
			require.NoError(t, err)
			assert.Empty(t, subs, when)
			photos, err := s.ListPhotos(ctx, match.DetailFilter{MatchID: matchID})
			require.NoError(t, err)
			assert.Empty(t, photos, when)
			stats, err := s.ListPlayerStats(ctx, playerstat.Filter{MatchID: matchID})
			require.NoError(t, err)
			assert.Empty(t, stats, when)
		}
		events, err := s.ListEvents(ctx, event.Filter{TeamID: doomed.ID})
		require.NoError(t, err)
		assert.Empty(t, events, when)
		att, err := s.ListAttendance(ctx, event.AttendanceFilter{EventID: ev.ID})
		require.NoError(t, err)
		assert.Empty(t, att, when)
		anns, err := s.ListAnnouncements(ctx, announcement.Filter{TeamID: doomed.ID})
		require.NoError(t, err)
		assert.Empty(t, anns, when)
		rows, err := s.ListClassifications(ctx, classification.Filter{TeamID: doomed.ID})
		require.NoError(t, err)
		assert.Empty(t, rows, when)
		seasons, err := s.ListSeasons(ctx, season.Filter{TeamID: doomed.ID})
		require.NoError(t, err)
		assert.Empty(t, seasons, when)
		invs, err := s.ListInvitations(ctx, invitation.Filter{TeamID: doomed.ID})
		require.NoError(t, err)
		assert.Empty(t, invs, when)
		_, found, err := s.GetTeamLineup(ctx, doomed.ID)
		require.NoError(t, err)
		assert.False(t, found, when)

		_, found, err = s.GetTeam(ctx, survivor.ID)
		require.NoError(t, err)
		assert.True(t, found, when)
		_, found, err = s.GetTeamMember(ctx, keepMember.ID)
		require.NoError(t, err)
		assert.True(t, found, when)
	}
}

func TestDeleteSeason_RefusedWhileClassified(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	tm := mustTeam(t, f.store, "Lions", nil)
	sea, err := f.store.CreateSeason(ctx, season.Season{TeamID: tm.ID, Name: "Spring", StartDate: testEpoch, EndDate: testEpoch.AddDate(0, 3, 0)})
	require.NoError(t, err)
	row, err := f.store.CreateClassification(ctx, classification.Classification{TeamID: tm.ID, SeasonID: &sea.ID, ExternalTeamName: "Rivals"})
	require.NoError(t, err)
	m, err := f.store.CreateMatch(ctx, match.Match{TeamID: tm.ID, SeasonID: &sea.ID, Opponent: "Rivals", ScheduledAt: testEpoch})
	require.NoError(t, err)

	ok, err := f.store.DeleteSeason(ctx, sea.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := f.store.GetSeason(ctx, sea.ID)
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = f.store.GetClassification(ctx, row.ID)
	require.NoError(t, err)
	assert.True(t, found)
	kept, _, err := f.store.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.SeasonID, "a refused delete must not detach matches")

	ok, err = f.store.DeleteClassification(ctx, row.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.store.DeleteSeason(ctx, sea.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	detached, found, err := f.store.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, detached.SeasonID)
}

func TestDeleteUser_KeepsTeamsAndClearsAuthorship(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	leaving := mustUser(t, f.store, "leaving")
	staying := mustUser(t, f.store, "staying")
	tm := mustTeam(t, f.store, "Lions", &leaving.ID)

	membership, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, UserID: &leaving.ID, Role: team.RoleAdmin})
	require.NoError(t, err)
	other, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, UserID: &staying.ID})
	require.NoError(t, err)
	m, err := f.store.CreateMatch(ctx, match.Match{TeamID: tm.ID, Opponent: "X", ScheduledAt: testEpoch})
	require.NoError(t, err)
	goal, err := f.store.CreateGoal(ctx, match.Goal{MatchID: m.ID, ScorerID: &membership.ID, AssistID: &other.ID, Minute: 12})
	require.NoError(t, err)
	stat, err := f.store.CreatePlayerStat(ctx, playerstat.Stat{MatchID: m.ID, TeamMemberID: membership.ID, Goals: 1})
	require.NoError(t, err)
	photo, err := f.store.CreatePhoto(ctx, match.Photo{MatchID: m.ID, URL: "https://img.example.com/p.jpg", UploadedBy: &leaving.ID})
	require.NoError(t, err)
	ann, err := f.store.CreateAnnouncement(ctx, announcement.Announcement{TeamID: tm.ID, AuthorID: &leaving.ID, Title: "Bye"})
	require.NoError(t, err)
	ev, err := f.store.CreateEvent(ctx, event.Event{TeamID: tm.ID, Title: "Social", Type: event.TypeSocial, StartsAt: testEpoch, EndsAt: testEpoch, CreatedBy: &leaving.ID})
	require.NoError(t, err)
	_, err = f.store.SetAttendance(ctx, event.Attendance{EventID: ev.ID, UserID: leaving.ID, Status: event.AttendanceMaybe})
	require.NoError(t, err)

	ok, err := f.store.DeleteUser(ctx, leaving.ID)
	require.NoError(t, err)
	require.True(t, ok)

	keptTeam, found, err := f.store.GetTeam(ctx, tm.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, keptTeam.CreatedBy)

	_, found, _ = f.store.GetTeamMember(ctx, membership.ID)
	assert.False(t, found)
	_, found, _ = f.store.GetTeamMember(ctx, other.ID)
	assert.True(t, found)

	keptGoal, found, _ := f.store.GetGoal(ctx, goal.ID)
	require.True(t, found)
	assert.Nil(t, keptGoal.ScorerID)
	require.NotNil(t, keptGoal.AssistID)
	assert.Equal(t, other.ID, *keptGoal.AssistID)

	_, found, _ = f.store.GetPlayerStat(ctx, stat.ID)
	assert.False(t, found)

	keptPhoto, _, _ := f.store.GetPhoto(ctx, photo.ID)
	assert.Nil(t, keptPhoto.UploadedBy)
	keptAnn, _, _ := f.store.GetAnnouncement(ctx, ann.ID)
	assert.Nil(t, keptAnn.AuthorID)
	keptEvent, _, _ := f.store.GetEvent(ctx, ev.ID)
	assert.Nil(t, keptEvent.CreatedBy)

	att, err := f.store.ListAttendance(ctx, event.AttendanceFilter{EventID: ev.ID})
	require.NoError(t, err)
	assert.Empty(t, att)
}

func TestReferenceIntegrity(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: 404, DisplayName: "ghost"})
	se := requireKind(t, err, storeerr.KindReferenceIntegrity)
	assert.Equal(t, "referenced team does not exist", se.Error())

	tm := mustTeam(t, f.store, "Lions", nil)
	missingUser := int64(55)
	_, err = f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, UserID: &missingUser})
	se = requireKind(t, err, storeerr.KindReferenceIntegrity)
	assert.Equal(t, "user_id", se.Field)

	_, err = f.store.SaveMatchLineup(ctx, lineup.MatchLineup{MatchID: 9, Formation: "4-4-2"})
	requireKind(t, err, storeerr.KindReferenceIntegrity)
}

func TestTeamMember_UniquePerLinkedUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	u := mustUser(t, f.store, "ana")
	tm := mustTeam(t, f.store, "Lions", nil)

	_, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, UserID: &u.ID})
	require.NoError(t, err)
	_, err = f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, UserID: &u.ID})
	se := requireKind(t, err, storeerr.KindConflict)
	assert.Equal(t, "team member already exists", se.Error())

	// Placeholder members never collide.
	placeholder, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, DisplayName: "TBD"})
	require.NoError(t, err)
	_, err = f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, DisplayName: "TBD"})
	require.NoError(t, err)
	assert.False(t, placeholder.Claimed())

	_, err = f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID})
	requireKind(t, err, storeerr.KindRequiredField)

	// Claiming a placeholder with an already linked user conflicts too.
	_, _, err = f.store.UpdateTeamMember(ctx, placeholder.ID, team.MemberPatch{UserID: &u.ID})
	requireKind(t, err, storeerr.KindConflict)
}

func TestDeleteMatch_RemovesDetails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	tm := mustTeam(t, f.store, "Lions", nil)
	m, err := f.store.CreateMatch(ctx, match.Match{TeamID: tm.ID, Opponent: "X", ScheduledAt: testEpoch})
	require.NoError(t, err)
	other, err := f.store.CreateMatch(ctx, match.Match{TeamID: tm.ID, Opponent: "Y", ScheduledAt: testEpoch})
	require.NoError(t, err)
	p, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: tm.ID, DisplayName: "p"})
	require.NoError(t, err)

	for _, matchID := range []int64{m.ID, other.ID} {
		_, err = f.store.CreateCard(ctx, match.Card{MatchID: matchID, TeamMemberID: p.ID, Type: match.CardRed, Minute: 80})
		require.NoError(t, err)
		_, err = f.store.SaveMatchLineup(ctx, lineup.MatchLineup{MatchID: matchID, Formation: "4-4-2"})
		require.NoError(t, err)
	}

	ok, err := f.store.DeleteMatch(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, ok)

	cards, err := f.store.ListCards(ctx, match.DetailFilter{})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, other.ID, cards[0].MatchID)
	_, found, _ := f.store.GetMatchLineup(ctx, other.ID)
	assert.True(t, found)
}

func TestActivateSeason_DeactivatesSiblings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	tm := mustTeam(t, f.store, "Lions", nil)
	otherTeam := mustTeam(t, f.store, "Tigers", nil)
	mk := func(teamID int64, name string, active bool) season.Season {
		se, err := f.store.CreateSeason(ctx, season.Season{TeamID: teamID, Name: name, StartDate: testEpoch, EndDate: testEpoch, IsActive: active})
		require.NoError(t, err)
		return se
	}
	old := mk(tm.ID, "old", true)
	also := mk(tm.ID, "also", true)
	next := mk(tm.ID, "next", false)
	foreign := mk(otherTeam.ID, "foreign", true)

	activated, ok, err := f.store.ActivateSeason(ctx, next.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, activated.IsActive)

	active, err := f.store.ListSeasons(ctx, season.Filter{TeamID: tm.ID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, next.ID, active[0].ID)

	for _, id := range []int64{old.ID, also.ID} {
		se, _, _ := f.store.GetSeason(ctx, id)
		assert.False(t, se.IsActive)
	}
	kept, _, _ := f.store.GetSeason(ctx, foreign.ID)
	assert.True(t, kept.IsActive)
}

func TestSeasonReferences_StayWithinTeam(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	home := mustTeam(t, f.store, "Home", nil)
	away := mustTeam(t, f.store, "Away", nil)
	awaySeason, err := f.store.CreateSeason(ctx, season.Season{TeamID: away.ID, Name: "2026", StartDate: testEpoch, EndDate: testEpoch.AddDate(0, 6, 0)})
	require.NoError(t, err)

	_, err = f.store.CreateClassification(ctx, classification.Classification{TeamID: home.ID, SeasonID: &awaySeason.ID, ExternalTeamName: "Rivals"})
	require.Error(t, err)
	assert.Equal(t, storeerr.KindReferenceIntegrity, storeerr.KindOf(err))

	_, err = f.store.CreateMatch(ctx, match.Match{TeamID: home.ID, SeasonID: &awaySeason.ID, Opponent: "Rivals", ScheduledAt: testEpoch})
	require.Error(t, err)
	assert.Equal(t, storeerr.KindReferenceIntegrity, storeerr.KindOf(err))

	homeMatch, err := f.store.CreateMatch(ctx, match.Match{TeamID: home.ID, Opponent: "Rivals", ScheduledAt: testEpoch})
	require.NoError(t, err)
	_, found, err := f.store.UpdateMatch(ctx, homeMatch.ID, match.Patch{SeasonID: &awaySeason.ID})
	require.True(t, found)
	require.Error(t, err)
	assert.Equal(t, storeerr.KindReferenceIntegrity, storeerr.KindOf(err))
	kept, _, err := f.store.GetMatch(ctx, homeMatch.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.SeasonID)

	_, err = f.store.CreateClassification(ctx, classification.Classification{TeamID: away.ID, SeasonID: &awaySeason.ID, ExternalTeamName: "Rivals"})
	require.NoError(t, err)
}

func TestDeleteTeam_RestrictCheckedBeforeAnyRemoval(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	home := mustTeam(t, f.store, "Home", nil)
	away := mustTeam(t, f.store, "Away", nil)
	member, err := f.store.CreateTeamMember(ctx, team.Member{TeamID: away.ID, DisplayName: "keeper"})
	require.NoError(t, err)
	awayMatch, err := f.store.CreateMatch(ctx, match.Match{TeamID: away.ID, Opponent: "Rivals", ScheduledAt: testEpoch})
	require.NoError(t, err)
	awaySeason, err := f.store.CreateSeason(ctx, season.Season{TeamID: away.ID, Name: "2026", StartDate: testEpoch, EndDate: testEpoch.AddDate(0, 6, 0)})
	require.NoError(t, err)

	// Rows written before seasons were pinned to their team can still point across teams.
	_, err = f.store.classifications.insert(classification.Classification{
		TeamID:           home.ID,
		SeasonID:         &awaySeason.ID,
		ExternalTeamName: "Legacy",
		UpdatedAt:        testEpoch,
	}, nil)
	require.NoError(t, err)

	ok, err := f.store.DeleteTeam(ctx, away.ID)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, storeerr.KindReferenceIntegrity, storeerr.KindOf(err))

	_, found, err := f.store.GetTeam(ctx, away.ID)
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = f.store.GetTeamMember(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, found, "refused team delete must keep members")
	_, found, err = f.store.GetMatch(ctx, awayMatch.ID)
	require.NoError(t, err)
	assert.True(t, found, "refused team delete must keep matches")
	_, found, err = f.store.GetSeason(ctx, awaySeason.ID)
	require.NoError(t, err)
	assert.True(t, found)
}
