package badge

import "streakd/internal/providers"

// Badge is one discrete visual frame: the text shown on the icon and its
// colors. An empty text with empty colors hides the badge entirely.
type Badge struct {
	Text       string
	TextColor  string
	Background string
}

// Renderer receives every visual frame the controller produces. The real
// extension surface is a browser action badge; the daemon ships a renderer
// that mirrors frames to the log, and tests record them.
type Renderer interface {
	Apply(b Badge)
}

// LogRenderer writes each distinct frame to the badge log channel. Blink
// frames alternate quickly, so identical consecutive frames are dropped.
type LogRenderer struct {
	logger providers.Logger
	last   Badge
	seen   bool
}

func NewLogRenderer(logger providers.Logger) Renderer {
	return &LogRenderer{logger: logger}
}

func (r *LogRenderer) Apply(b Badge) {
	if r.seen && b == r.last {
		return
	}
	r.last = b
	r.seen = true
	if b.Text == "" && b.Background == "" {
		r.logger.Debugf(providers.TypeBadge, "badge hidden")
		return
	}
	r.logger.Debugf(providers.TypeBadge, "badge %q fg=%s bg=%s", b.Text, b.TextColor, b.Background)
}
