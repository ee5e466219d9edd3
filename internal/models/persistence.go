package models

// StateFileV2 is the persisted file format: the flat tracker state plus an
// explicit schema version. The original extension stored a version-less
// key-value object; the envelope exists so later format changes can migrate
// instead of guessing.
type StateFileV2 struct {
	Version           int          `json:"version"`
	State             TrackerState `json:"state"`
	CompletedProblems []int        `json:"completedProblems"`
}

const StateFileVersion = 2

// LegacyStateFile matches the version-less flat object written before the
// envelope existed. Booleans are pointers because absence means "default
// true", not false.
type LegacyStateFile struct {
	LastVisitedDate        string `json:"lastVisitedDate"`
	Streak                 int    `json:"streak"`
	BadgeStreakEnabled     *bool  `json:"badgeStreakEnabled"`
	NotificationsEnabled   *bool  `json:"notificationsEnabled"`
	ReminderTime           string `json:"reminderTime"`
	LastUrgentNotification string `json:"lastUrgentNotification"`
	Username               string `json:"leetCodeUsername"`
	Avatar                 string `json:"leetCodeAvatar"`
	CompletedProblems      []int  `json:"completedProblems"`
}

// ToState converts a legacy file to the current state shape, applying
// defaults for every absent field.
func (l *LegacyStateFile) ToState() TrackerState {
	state := DefaultState()
	state.LastVisitedDate = l.LastVisitedDate
	if l.Streak > 0 {
		state.Streak = l.Streak
	}
	if l.BadgeStreakEnabled != nil {
		state.BadgeStreakEnabled = *l.BadgeStreakEnabled
	}
	if l.NotificationsEnabled != nil {
		state.NotificationsEnabled = *l.NotificationsEnabled
	}
	if l.ReminderTime != "" {
		state.ReminderTime = l.ReminderTime
	}
	state.LastUrgentNotification = l.LastUrgentNotification
	state.Username = l.Username
	state.Avatar = l.Avatar
	for _, id := range l.CompletedProblems {
		state.CompletedProblems[id] = struct{}{}
	}
	return state
}
