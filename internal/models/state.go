package models

import (
	"sync"
	"time"
)

const (
	DefaultReminderTime = "10:00"
	DateLayout          = "2006-01-02"
)

// TrackerState is the persisted key-value state shared by the badge
// controller, poller, reminder scheduler and bridge. Values absent from a
// loaded file fall back to the defaults below; a missing field is never an
// error.
type TrackerState struct {
	LastVisitedDate        string         `json:"lastVisitedDate"`
	Streak                 int            `json:"streak"`
	BadgeStreakEnabled     bool           `json:"badgeStreakEnabled"`
	NotificationsEnabled   bool           `json:"notificationsEnabled"`
	ReminderTime           string         `json:"reminderTime"`
	LastUrgentNotification string         `json:"lastUrgentNotification"`
	Username               string         `json:"leetCodeUsername"`
	Avatar                 string         `json:"leetCodeAvatar"`
	CompletedProblems      map[int]struct{} `json:"-"`
}

func DefaultState() TrackerState {
	return TrackerState{
		BadgeStreakEnabled:   true,
		NotificationsEnabled: true,
		ReminderTime:         DefaultReminderTime,
		CompletedProblems:    make(map[int]struct{}),
	}
}

// SolvedOn reports whether the given calendar date is already recorded as
// solved.
func (s *TrackerState) SolvedOn(date string) bool {
	return s.LastVisitedDate == date
}

// Today formats a point in time as the tracker's UTC calendar date. The
// daily challenge resets at midnight UTC, so all date comparisons use UTC
// regardless of the local reminder clock.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// NextReset returns the next midnight UTC after now, i.e. the daily
// challenge deadline.
func NextReset(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

// StateStore is the storage port: a mutex-guarded in-memory copy of the
// persisted state. Reads hand out value snapshots; writes run inside one
// critical section so a completion (date+streak+username+avatar) applies
// atomically. Durability is the FileManager's concern.
type StateStore struct {
	mu    sync.RWMutex
	state TrackerState
	dirty bool
}

func NewStateStore() *StateStore {
	return &StateStore{state: DefaultState()}
}

// Snapshot returns a copy of the current state. The CompletedProblems set
// is copied too, so callers can iterate without holding the lock.
func (ss *StateStore) Snapshot() TrackerState {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	snap := ss.state
	snap.CompletedProblems = make(map[int]struct{}, len(ss.state.CompletedProblems))
	for id := range ss.state.CompletedProblems {
		snap.CompletedProblems[id] = struct{}{}
	}
	return snap
}

// Update applies fn to the state inside the write lock.
func (ss *StateStore) Update(fn func(*TrackerState)) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	fn(&ss.state)
	ss.dirty = true
}

// ApplyCompletion records a confirmed solve for the given date in one
// atomic write. Both the poller and the bridge funnel through here, which
// makes concurrent confirmation of the same day harmless.
func (ss *StateStore) ApplyCompletion(date string, streak int, username, avatar string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.state.LastVisitedDate = date
	ss.state.Streak = streak
	if username != "" {
		ss.state.Username = username
	}
	if avatar != "" {
		ss.state.Avatar = avatar
	}
	ss.dirty = true
}

// Replace swaps in a freshly loaded state, normalizing nil collections.
func (ss *StateStore) Replace(state TrackerState) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if state.CompletedProblems == nil {
		state.CompletedProblems = make(map[int]struct{})
	}
	ss.state = state
	ss.dirty = false
}

// ConsumeDirty reports whether the state changed since the last call and
// resets the flag, letting the persistence job skip no-op saves.
func (ss *StateStore) ConsumeDirty() bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	d := ss.dirty
	ss.dirty = false
	return d
}
