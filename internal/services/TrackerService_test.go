package services

import (
	"testing"
	"time"

	"streakd/internal/badge"
	"streakd/internal/leetcode"
	"streakd/internal/models"
	"streakd/internal/structures"
	"streakd/internal/testutil"

	"github.com/stretchr/testify/assert"
)

type nopRenderer struct{}

func (nopRenderer) Apply(_ badge.Badge) {}

func newService(now time.Time) (TrackerServiceInterface, *models.StateStore, *badge.Controller) {
	store := models.NewStateStore()
	clock := testutil.NewMockClock(now)
	conf := &structures.Config{
		Badge: structures.BadgeConfig{
			BlinkInterval:        500 * time.Millisecond,
			LoadingBlinkInterval: 300 * time.Millisecond,
		},
	}
	ctrl := badge.NewController(conf, store, nopRenderer{}, clock, &testutil.MockLogger{}, testutil.NewMockMetrics())
	return NewTrackerService(store, ctrl, clock, &testutil.MockLogger{}), store, ctrl
}

var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestApplyCompletion_PersistsAndRedraws(t *testing.T) {
	svc, store, ctrl := newService(noon)

	svc.ApplyCompletion(12, "alice", "a.png")

	snap := store.Snapshot()
	assert.Equal(t, "2026-03-10", snap.LastVisitedDate)
	assert.Equal(t, 12, snap.Streak)
	assert.Equal(t, "alice", snap.Username)
	assert.Equal(t, "a.png", snap.Avatar)
	assert.Equal(t, badge.StateSolved, ctrl.State())
}

func TestStatus_Countdown(t *testing.T) {
	svc, _, _ := newService(noon)

	status := svc.Status()
	assert.False(t, status.SolvedToday)
	assert.Equal(t, int64(12*3600), status.SecondsToReset)
	assert.Equal(t, "10:00", status.ReminderTime)
}

func TestStatus_SolvedToday(t *testing.T) {
	svc, _, _ := newService(noon)
	svc.ApplyCompletion(3, "bob", "")

	status := svc.Status()
	assert.True(t, status.SolvedToday)
	assert.Equal(t, 3, status.Streak)
	assert.Equal(t, "bob", status.Username)
}

func TestRecordChallenge_CachesMetadata(t *testing.T) {
	svc, store, _ := newService(noon)

	svc.RecordChallenge(&leetcode.DailyStatus{
		SignedIn:          true,
		Username:          "alice",
		Avatar:            "a.png",
		ChallengeTitle:    "Two Sum",
		ChallengeSlug:     "two-sum",
		ChallengeDiff:     "Easy",
		ChallengeLink:     "/problems/two-sum/",
		ChallengeFrontend: "1",
	})

	ch := svc.Challenge()
	assert.Equal(t, "Two Sum", ch.Title)
	assert.Equal(t, "1", ch.ID)

	snap := store.Snapshot()
	assert.Equal(t, "alice", snap.Username)
}

func TestRecordChallenge_SignedOutKeepsMetadata(t *testing.T) {
	svc, store, _ := newService(noon)
	store.Update(func(s *models.TrackerState) { s.Username = "alice" })

	svc.RecordChallenge(&leetcode.DailyStatus{SignedIn: false, Username: ""})

	snap := store.Snapshot()
	assert.Equal(t, "alice", snap.Username)
}

func TestSetCompleted_Toggle(t *testing.T) {
	svc, store, _ := newService(noon)

	svc.SetCompleted(217, true)
	assert.Contains(t, store.Snapshot().CompletedProblems, 217)

	svc.SetCompleted(217, false)
	assert.NotContains(t, store.Snapshot().CompletedProblems, 217)
}

func TestSetReminderTime(t *testing.T) {
	svc, store, _ := newService(noon)

	svc.SetReminderTime("21:15")
	assert.Equal(t, "21:15", store.Snapshot().ReminderTime)
}
