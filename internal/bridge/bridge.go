package bridge

import (
	"context"
	"sync"
	"time"

	"streakd/internal/badge"
	"streakd/internal/leetcode"
	"streakd/internal/providers"
	"streakd/internal/services"
	"streakd/internal/structures"
)

// Bridge is the fast completion path. The page script posts the HTML of
// nodes added to the judge page; when the detector recognizes an accepted
// submission the bridge optimistically enters the loading state, waits for
// the judge's backend to settle and confirms through the same query the
// poller uses.
type Bridge struct {
	detector Detector
	badge    *badge.Controller
	client   leetcode.ClientInterface
	service  services.TrackerServiceInterface
	clock    providers.Clock
	logger   providers.Logger

	cooldown time.Duration
	guard    time.Duration
	settle   time.Duration

	mu          sync.Mutex
	lastCheck   time.Time
	lastTrigger time.Time
}

func NewBridge(conf *structures.Config, detector Detector, badgeCtrl *badge.Controller, client leetcode.ClientInterface, service services.TrackerServiceInterface, clock providers.Clock, logger providers.Logger) *Bridge {
	return &Bridge{
		detector: detector,
		badge:    badgeCtrl,
		client:   client,
		service:  service,
		clock:    clock,
		logger:   logger,
		cooldown: conf.Bridge.CheckCooldown,
		guard:    conf.Bridge.TriggerGuard,
		settle:   conf.Bridge.SettleDelay,
	}
}

// Observe processes one mutation report. A submission produces a burst of
// mutations, so checks are rate-limited to one per cooldown window and a
// recognized trigger is not re-fired within the guard window.
func (b *Bridge) Observe(html string) {
	now := b.clock.Now()

	b.mu.Lock()
	if !b.lastCheck.IsZero() && now.Sub(b.lastCheck) < b.cooldown {
		b.mu.Unlock()
		return
	}
	b.lastCheck = now
	b.mu.Unlock()

	if !b.detector.Accepted(html) {
		return
	}

	b.mu.Lock()
	if !b.lastTrigger.IsZero() && now.Sub(b.lastTrigger) < b.guard {
		b.mu.Unlock()
		return
	}
	b.lastTrigger = now
	b.mu.Unlock()

	b.logger.Infof(providers.TypeBridge, "Accepted submission detected, confirming in %s", b.settle)
	b.badge.StartLoading()
	b.clock.AfterFunc(b.settle, b.confirm)
}

// confirm runs after the settle delay. Confirmation failures of any kind
// release the loading state so the badge is not left stuck mid-blink.
func (b *Bridge) confirm() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := b.client.FetchDailyStatus(ctx)
	if err != nil {
		b.logger.Debugf(providers.TypeBridge, "confirmation query failed: %s", err)
		b.badge.StopLoading()
		return
	}

	b.service.RecordChallenge(status)

	if !status.SignedIn || !status.CompletedToday {
		b.badge.StopLoading()
		return
	}

	b.service.ApplyCompletion(status.Streak, status.Username, status.Avatar)
}
