package bridge

import (
	"errors"
	"sync"
	"testing"
	"time"

	"streakd/internal/badge"
	"streakd/internal/leetcode"
	"streakd/internal/models"
	"streakd/internal/services"
	"streakd/internal/structures"
	"streakd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acceptedFixture = `<div><span>Accepted</span><div>Runtime: 12 ms</div></div>`

type nullRenderer struct{}

func (nullRenderer) Apply(_ badge.Badge) {}

type recordingService struct {
	mu          sync.Mutex
	completions []int
	challenges  int
}

func (r *recordingService) ApplyCompletion(streak int, _, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, streak)
}
func (r *recordingService) SetReminderTime(_ string)                {}
func (r *recordingService) SetCompleted(_ int, _ bool)              {}
func (r *recordingService) RecordChallenge(_ *leetcode.DailyStatus) { r.challenges++ }
func (r *recordingService) Challenge() services.Challenge           { return services.Challenge{} }
func (r *recordingService) Status() services.StatusReport           { return services.StatusReport{} }
func (r *recordingService) Snapshot() models.TrackerState           { return models.TrackerState{} }

func (r *recordingService) completionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.completions)
}

func bridgeConfig() *structures.Config {
	return &structures.Config{
		Badge: structures.BadgeConfig{
			BlinkInterval:        500 * time.Millisecond,
			LoadingBlinkInterval: 300 * time.Millisecond,
		},
		Bridge: structures.BridgeConfig{
			CheckCooldown: 5 * time.Second,
			TriggerGuard:  10 * time.Second,
			SettleDelay:   3 * time.Second,
		},
	}
}

func newTestBridge(t *testing.T) (*Bridge, *badge.Controller, *recordingService, *testutil.MockClock, *testutil.MockLeetCodeClient) {
	t.Helper()
	conf := bridgeConfig()
	store := models.NewStateStore()
	clock := testutil.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	badgeCtrl := badge.NewController(conf, store, nullRenderer{}, clock, &testutil.MockLogger{}, testutil.NewMockMetrics())
	client := &testutil.MockLeetCodeClient{
		Status: &leetcode.DailyStatus{SignedIn: true, CompletedToday: true, Streak: 7, Username: "alice"},
	}
	service := &recordingService{}
	b := NewBridge(conf, NewTokenDetector(), badgeCtrl, client, service, clock, &testutil.MockLogger{})
	return b, badgeCtrl, service, clock, client
}

func TestObserve_AcceptedTriggersLoadingAndConfirms(t *testing.T) {
	b, badgeCtrl, service, clock, client := newTestBridge(t)

	b.Observe(acceptedFixture)
	assert.True(t, badgeCtrl.Loading())
	assert.Equal(t, 0, client.CallCount(), "confirmation waits for the settle delay")

	clock.Advance(3 * time.Second)

	assert.Equal(t, 1, client.CallCount())
	assert.Equal(t, 1, service.completionCount())
	assert.Equal(t, 7, service.completions[0])
}

func TestObserve_UnrelatedMutationIgnored(t *testing.T) {
	b, badgeCtrl, service, clock, client := newTestBridge(t)

	b.Observe(`<div>console output updated</div>`)
	clock.Advance(time.Minute)

	assert.False(t, badgeCtrl.Loading())
	assert.Equal(t, 0, client.CallCount())
	assert.Equal(t, 0, service.completionCount())
}

func TestObserve_CooldownRateLimitsChecks(t *testing.T) {
	b, _, service, clock, _ := newTestBridge(t)

	// First mutation inside the burst misses the verdict; the accepted
	// fragment lands 1s later, still inside the 5s cooldown.
	b.Observe(`<div>judging...</div>`)
	clock.Advance(time.Second)
	b.Observe(acceptedFixture)
	clock.Advance(time.Minute)

	assert.Equal(t, 0, service.completionCount())

	// After the cooldown the same fragment is checked again.
	b.Observe(acceptedFixture)
	clock.Advance(time.Minute)

	assert.Equal(t, 1, service.completionCount())
}

func TestObserve_GuardSuppressesRefire(t *testing.T) {
	b, _, _, clock, client := newTestBridge(t)

	b.Observe(acceptedFixture)
	clock.Advance(6 * time.Second) // past cooldown and settle, inside the 10s guard
	b.Observe(acceptedFixture)
	clock.Advance(time.Minute)

	assert.Equal(t, 1, client.CallCount())
}

func TestConfirm_FetchErrorReleasesLoading(t *testing.T) {
	b, badgeCtrl, service, clock, client := newTestBridge(t)
	client.Err = errors.New("timeout")

	b.Observe(acceptedFixture)
	require.True(t, badgeCtrl.Loading())
	clock.Advance(3 * time.Second)

	assert.False(t, badgeCtrl.Loading())
	assert.Equal(t, 0, service.completionCount())
}

func TestConfirm_NotCompletedReleasesLoading(t *testing.T) {
	b, badgeCtrl, service, clock, client := newTestBridge(t)
	client.Status = &leetcode.DailyStatus{SignedIn: true, CompletedToday: false}

	b.Observe(acceptedFixture)
	clock.Advance(3 * time.Second)

	assert.False(t, badgeCtrl.Loading())
	assert.Equal(t, 0, service.completionCount())
	assert.Equal(t, 1, service.challenges, "challenge metadata still recorded")
}

func TestConfirm_SignedOutReleasesLoading(t *testing.T) {
	b, badgeCtrl, service, clock, client := newTestBridge(t)
	client.Status = &leetcode.DailyStatus{SignedIn: false, CompletedToday: true}

	b.Observe(acceptedFixture)
	clock.Advance(3 * time.Second)

	assert.False(t, badgeCtrl.Loading())
	assert.Equal(t, 0, service.completionCount())
}
