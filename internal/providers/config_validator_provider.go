package providers

import (
	"fmt"
	"regexp"
	"streakd/internal/structures"
	"time"

	"github.com/gookit/validate"
)

var reminderTimeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if cv.conf.Reminder.DailyTime != "" && !reminderTimeRe.MatchString(cv.conf.Reminder.DailyTime) {
		return fmt.Errorf("reminder.dailyTime %q is not a valid HH:MM time", cv.conf.Reminder.DailyTime)
	}
	if len(cv.conf.Explorer.CuratedLists) > 3 {
		return fmt.Errorf("explorer.curatedLists supports at most 3 lists, got %d", len(cv.conf.Explorer.CuratedLists))
	}
	return nil
}

// applyDefaults fills the optional knobs that have sensible fixed defaults,
// so the rest of the code never branches on zero values.
func applyDefaults(conf *structures.Config) {
	if conf.Bridge.CheckCooldown == 0 {
		conf.Bridge.CheckCooldown = 5 * time.Second
	}
	if conf.Bridge.TriggerGuard == 0 {
		conf.Bridge.TriggerGuard = 10 * time.Second
	}
	if conf.Bridge.SettleDelay == 0 {
		conf.Bridge.SettleDelay = 3 * time.Second
	}
	if conf.Explorer.PageSize <= 0 {
		conf.Explorer.PageSize = 50
	}
}
