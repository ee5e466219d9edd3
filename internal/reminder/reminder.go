package reminder

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"streakd/internal/leetcode"
	"streakd/internal/models"
	"streakd/internal/providers"
	"streakd/internal/structures"

	"github.com/google/uuid"
	"github.com/pkg/browser"
)

const problemListURL = "https://leetcode.com/problemset/"

// Unclicked notifications are forgotten after this long.
const activeNotificationTTL = 24 * time.Hour

var leadingAlpha = regexp.MustCompile(`^[A-Za-z]+`)

// Scheduler owns the two reminder triggers: the daily reminder at the
// configured wall-clock time and the urgent pre-deadline check. The daily
// trigger is a self-rearming 24h timer; the urgent check is driven
// externally on a fixed cadence (see tracker.Scheduler).
type Scheduler struct {
	conf     *structures.Config
	store    *models.StateStore
	notifier Notifier
	client   leetcode.ClientInterface
	clock    providers.Clock
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	mu         sync.Mutex
	dailyTimer providers.Timer
	dailyTime  string
	active     map[string]time.Time
	openURL    func(string) error
}

func NewScheduler(conf *structures.Config, store *models.StateStore, notifier Notifier, client leetcode.ClientInterface, clock providers.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) *Scheduler {
	return &Scheduler{
		conf:     conf,
		store:    store,
		notifier: notifier,
		client:   client,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
		active:   make(map[string]time.Time),
		openURL:  browser.OpenURL,
	}
}

// NextReminderDelay computes the delay until the next occurrence of the
// given HH:MM local wall-clock time: today if that time is still ahead,
// otherwise tomorrow.
func NextReminderDelay(now time.Time, hhmm string) (time.Duration, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid reminder time %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid reminder hour %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid reminder minute %q", hhmm)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now), nil
}

// InstallDaily (re)arms the daily reminder for the given time, replacing
// any previously installed trigger.
func (s *Scheduler) InstallDaily(hhmm string) error {
	delay, err := NextReminderDelay(s.clock.Now(), hhmm)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dailyTimer != nil {
		s.dailyTimer.Stop()
	}
	s.dailyTime = hhmm
	s.dailyTimer = s.clock.AfterFunc(delay, s.fireDaily)
	s.logger.Infof(providers.TypeReminder, "Daily reminder armed for %s (in %s)", hhmm, delay.Round(time.Second))
	return nil
}

// Stop cancels the daily trigger.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dailyTimer != nil {
		s.dailyTimer.Stop()
		s.dailyTimer = nil
	}
}

func (s *Scheduler) fireDaily() {
	// Re-arm first so a panic in delivery cannot kill the cadence. The
	// delay is recomputed from the wall clock, so the local fire time
	// holds steady across DST shifts.
	s.mu.Lock()
	hhmm := s.dailyTime
	delay, err := NextReminderDelay(s.clock.Now(), hhmm)
	if err != nil {
		delay = 24 * time.Hour
	}
	s.dailyTimer = s.clock.AfterFunc(delay, s.fireDaily)
	s.mu.Unlock()

	snap := s.store.Snapshot()
	now := s.clock.Now()
	if snap.SolvedOn(models.Today(now)) {
		return
	}
	if !snap.NotificationsEnabled {
		return
	}

	s.notify("daily", "LeetCode Daily Challenge", dailyMessage(snap.Username))
	s.logger.Debugf(providers.TypeReminder, "daily reminder fired (%s)", hhmm)
}

// CheckUrgent fires the pre-deadline warning when the challenge is still
// unsolved inside the urgent window. At most one urgent notification per
// calendar day, recorded in the persisted state.
func (s *Scheduler) CheckUrgent() {
	now := s.clock.Now()
	today := models.Today(now)
	remaining := models.NextReset(now).Sub(now)

	snap := s.store.Snapshot()
	switch {
	case remaining <= 0 || remaining > s.conf.Reminder.UrgentWindow:
		return
	case snap.SolvedOn(today):
		return
	case snap.LastUrgentNotification == today:
		return
	case !snap.NotificationsEnabled:
		return
	}

	s.store.Update(func(state *models.TrackerState) {
		state.LastUrgentNotification = today
	})
	s.notify("urgent", "Daily challenge deadline approaching", urgentMessage(snap.Streak, remaining))
}

// HandleClick resolves a clicked notification: forget it, look up today's
// problem and navigate there, falling back to the generic problem list on
// any failure.
func (s *Scheduler) HandleClick(ctx context.Context, id string) string {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()

	target := problemListURL
	status, err := s.client.FetchDailyStatus(ctx)
	if err == nil && status.ChallengeLink != "" {
		target = "https://leetcode.com" + status.ChallengeLink
	}

	if err := s.openURL(target); err != nil {
		s.logger.Debugf(providers.TypeReminder, "open %s failed: %s", target, err)
	}
	return target
}

func (s *Scheduler) notify(kind, title, body string) {
	n := Notification{ID: uuid.NewString(), Title: title, Body: body}
	now := s.clock.Now()

	s.mu.Lock()
	for id, issued := range s.active {
		if now.Sub(issued) > activeNotificationTTL {
			delete(s.active, id)
		}
	}
	s.active[n.ID] = now
	s.mu.Unlock()

	if err := s.notifier.Notify(n); err != nil {
		s.logger.Debugf(providers.TypeReminder, "notify failed: %s", err)
		return
	}
	s.metrics.IncNotificationsTotal(kind)
}

func dailyMessage(username string) string {
	greeting := "Hey"
	if token := leadingAlpha.FindString(username); token != "" {
		greeting = "Hey " + token
	}
	return greeting + ", today's LeetCode challenge is still waiting for you."
}

func urgentMessage(streak int, remaining time.Duration) string {
	base := fmt.Sprintf("Less than %d hours left to solve today's challenge.", int(remaining.Hours())+1)
	if streak > 0 {
		return fmt.Sprintf("%s Solve it now or your %d-day streak is gone!", base, streak)
	}
	return base
}
