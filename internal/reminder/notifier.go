package reminder

import (
	"os/exec"

	"streakd/internal/providers"
	"streakd/internal/structures"
)

// Notification is one user-facing reminder.
type Notification struct {
	ID    string
	Title string
	Body  string
}

// Notifier delivers notifications to the user. Delivery is fire-and-forget;
// a failed notification is logged, never retried.
type Notifier interface {
	Notify(n Notification) error
}

// CommandNotifier shells out to a desktop notification binary such as
// notify-send.
type CommandNotifier struct {
	command string
	logger  providers.Logger
}

func (cn *CommandNotifier) Notify(n Notification) error {
	cmd := exec.Command(cn.command, n.Title, n.Body)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			cn.logger.Debugf(providers.TypeReminder, "notifier command %s exited: %s", cn.command, err)
		}
	}()
	return nil
}

// LogNotifier writes notifications to the reminder log channel. Used when
// no notification command is configured.
type LogNotifier struct {
	logger providers.Logger
}

func (ln *LogNotifier) Notify(n Notification) error {
	ln.logger.Infof(providers.TypeReminder, "notification %s: %s / %s", n.ID, n.Title, n.Body)
	return nil
}

func NewNotifier(conf *structures.Config, logger providers.Logger) Notifier {
	if conf.Notifier.Command == "" {
		return &LogNotifier{logger: logger}
	}
	return &CommandNotifier{command: conf.Notifier.Command, logger: logger}
}
