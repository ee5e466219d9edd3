package services

import (
	"sync"
	"time"

	"streakd/internal/badge"
	"streakd/internal/leetcode"
	"streakd/internal/models"
	"streakd/internal/providers"
)

// Challenge is the cached metadata of today's daily challenge, refreshed by
// the poller on each successful query.
type Challenge struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Difficulty string `json:"difficulty"`
	Link       string `json:"link"`
}

// StatusReport is the popup payload: everything the front end needs to
// render the streak card and the countdown to the next daily reset.
type StatusReport struct {
	Username       string    `json:"username"`
	Avatar         string    `json:"avatar"`
	Streak         int       `json:"streak"`
	SolvedToday    bool      `json:"solvedToday"`
	SecondsToReset int64     `json:"secondsToReset"`
	ReminderTime   string    `json:"reminderTime"`
	Challenge      Challenge `json:"challenge"`
}

type TrackerServiceInterface interface {
	ApplyCompletion(streak int, username, avatar string)
	SetReminderTime(t string)
	SetCompleted(problemID int, done bool)
	RecordChallenge(status *leetcode.DailyStatus)
	Challenge() Challenge
	Status() StatusReport
	Snapshot() models.TrackerState
}

// TrackerService is the façade the controllers and background jobs share:
// it funnels all state mutations through the store and keeps the badge in
// sync after each one.
type TrackerService struct {
	store  *models.StateStore
	badge  *badge.Controller
	clock  providers.Clock
	logger providers.Logger

	mu        sync.RWMutex
	challenge Challenge
}

func NewTrackerService(store *models.StateStore, badgeCtrl *badge.Controller, clock providers.Clock, logger providers.Logger) TrackerServiceInterface {
	return &TrackerService{
		store:  store,
		badge:  badgeCtrl,
		clock:  clock,
		logger: logger,
	}
}

// ApplyCompletion records today's solve and redraws the badge. Both the
// poller and the bridge call this; writing the same completion twice is
// harmless.
func (ts *TrackerService) ApplyCompletion(streak int, username, avatar string) {
	today := models.Today(ts.clock.Now())
	ts.store.ApplyCompletion(today, streak, username, avatar)
	ts.logger.Infof(providers.TypeApp, "Challenge completed for %s, streak %d", today, streak)
	ts.badge.Redraw()
}

func (ts *TrackerService) SetReminderTime(t string) {
	ts.store.Update(func(s *models.TrackerState) {
		s.ReminderTime = t
	})
}

func (ts *TrackerService) SetCompleted(problemID int, done bool) {
	ts.store.Update(func(s *models.TrackerState) {
		if done {
			s.CompletedProblems[problemID] = struct{}{}
		} else {
			delete(s.CompletedProblems, problemID)
		}
	})
}

// RecordChallenge caches display metadata from the latest successful query.
func (ts *TrackerService) RecordChallenge(status *leetcode.DailyStatus) {
	if status == nil {
		return
	}
	ts.mu.Lock()
	ts.challenge = Challenge{
		ID:         status.ChallengeFrontend,
		Title:      status.ChallengeTitle,
		Slug:       status.ChallengeSlug,
		Difficulty: status.ChallengeDiff,
		Link:       status.ChallengeLink,
	}
	ts.mu.Unlock()

	if status.SignedIn && (status.Username != "" || status.Avatar != "") {
		ts.store.Update(func(s *models.TrackerState) {
			if status.Username != "" {
				s.Username = status.Username
			}
			if status.Avatar != "" {
				s.Avatar = status.Avatar
			}
		})
	}
}

func (ts *TrackerService) Challenge() Challenge {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.challenge
}

func (ts *TrackerService) Status() StatusReport {
	snap := ts.store.Snapshot()
	now := ts.clock.Now()
	remaining := models.NextReset(now).Sub(now)

	return StatusReport{
		Username:       snap.Username,
		Avatar:         snap.Avatar,
		Streak:         snap.Streak,
		SolvedToday:    snap.SolvedOn(models.Today(now)),
		SecondsToReset: int64(remaining / time.Second),
		ReminderTime:   snap.ReminderTime,
		Challenge:      ts.Challenge(),
	}
}

func (ts *TrackerService) Snapshot() models.TrackerState {
	return ts.store.Snapshot()
}
