package badge

import (
	"strconv"
	"sync"
	"time"

	"streakd/internal/models"
	"streakd/internal/providers"
	"streakd/internal/structures"

	"go.uber.org/atomic"
)

type DisplayState string

const (
	StateSolved  DisplayState = "solved"
	StateUrgent  DisplayState = "urgent"
	StatePending DisplayState = "pending"
	StateLoading DisplayState = "loading"
)

const (
	colorDark   = "#1E1E1E"
	colorGreen  = "#2CBB5D"
	colorRed    = "#EF4743"
	colorOrange = "#FFA116"
	colorAmber  = "#FFC01E"
	colorWhite  = "#FFFFFF"

	// blankGlyph keeps the badge visibly colored when the streak count is
	// disabled: a lone space renders as an empty colored pill.
	blankGlyph = " "
)

// UrgentWindow is how close to the daily reset the unsolved state turns
// urgent.
const UrgentWindow = 2 * time.Hour

// Controller owns the badge display state. Every Redraw derives the target
// state from a fresh storage snapshot and the clock, so concurrent calls
// are idempotent; the only mutable residue is the blink machinery, which is
// rebuilt from scratch after a process restart.
type Controller struct {
	store    *models.StateStore
	renderer Renderer
	clock    providers.Clock
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	blinkInterval   time.Duration
	loadingInterval time.Duration

	loading atomic.Bool
	visible atomic.Bool

	mu         sync.Mutex
	blinkTimer providers.Timer
	blinkGen   int
	blinkText  string
	blinkEvery time.Duration
	frame      Badge
	state      DisplayState
}

func NewController(conf *structures.Config, store *models.StateStore, renderer Renderer, clock providers.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) *Controller {
	c := &Controller{
		store:           store,
		renderer:        renderer,
		clock:           clock,
		logger:          logger,
		metrics:         metrics,
		blinkInterval:   conf.Badge.BlinkInterval,
		loadingInterval: conf.Badge.LoadingBlinkInterval,
	}
	c.visible.Store(true)
	return c
}

// Redraw re-evaluates the display state from the latest storage snapshot.
// A pending loading signal overrides the data-derived state unless the day
// is confirmed solved, which clears loading on the spot.
func (c *Controller) Redraw() {
	snap := c.store.Snapshot()
	now := c.clock.Now()
	today := models.Today(now)
	solved := snap.SolvedOn(today)

	if solved {
		c.loading.Store(false)
	}

	streakText := strconv.Itoa(snap.Streak)
	c.metrics.SetStreakDays(snap.Streak)

	if c.loading.Load() {
		c.setState(StateLoading)
		c.startBlink(streakText, c.loadingInterval, colorAmber, colorDark)
		return
	}

	switch {
	case solved:
		c.setState(StateSolved)
		c.stopBlinkLocked()
		if snap.BadgeStreakEnabled {
			c.apply(Badge{Text: streakText, TextColor: colorGreen, Background: colorDark})
		} else {
			c.apply(Badge{})
		}

	case models.NextReset(now).Sub(now) <= UrgentWindow:
		c.setState(StateUrgent)
		if snap.BadgeStreakEnabled {
			c.startBlink(streakText, c.blinkInterval, colorRed, colorDark)
		} else {
			c.startBlink(blankGlyph, c.blinkInterval, colorWhite, colorRed)
		}

	default:
		c.setState(StatePending)
		c.stopBlinkLocked()
		if snap.BadgeStreakEnabled {
			c.apply(Badge{Text: streakText, TextColor: colorOrange, Background: colorDark})
		} else {
			c.apply(Badge{Text: blankGlyph, TextColor: colorWhite, Background: colorOrange})
		}
	}
}

// StartLoading enters the optimistic loading state until StopLoading or a
// solved confirmation.
func (c *Controller) StartLoading() {
	c.loading.Store(true)
	c.Redraw()
}

// StopLoading exits the loading state and falls back to the data-derived
// display.
func (c *Controller) StopLoading() {
	c.loading.Store(false)
	c.StopBlinking()
	c.Redraw()
}

// StopBlinking cancels any active blink, leaving the badge visible rather
// than caught mid-blank, and clears the loading flag.
func (c *Controller) StopBlinking() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopBlink()
}

// State returns the display state chosen by the last Redraw.
func (c *Controller) State() DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Blinking reports whether a blink timer is active, and with which text.
func (c *Controller) Blinking() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blinkTimer != nil, c.blinkText
}

// Visible reports the current blink phase; true whenever not blinking.
func (c *Controller) Visible() bool {
	return c.visible.Load()
}

// Loading reports whether the loading override is pending.
func (c *Controller) Loading() bool {
	return c.loading.Load()
}

func (c *Controller) setState(s DisplayState) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	c.mu.Unlock()
	if changed {
		c.metrics.IncBadgeRedraws(string(s))
		c.logger.Debugf(providers.TypeBadge, "display state -> %s", s)
	}
}

func (c *Controller) apply(b Badge) {
	c.mu.Lock()
	c.frame = b
	c.mu.Unlock()
	c.renderer.Apply(b)
}

// startBlink begins alternating between text and an empty badge. Redraw
// runs on every poll tick and message, so an already-active blink with the
// same text and cadence is left untouched to avoid resetting the phase.
func (c *Controller) startBlink(text string, every time.Duration, fg, bg string) {
	c.mu.Lock()
	if c.blinkTimer != nil && c.blinkText == text && c.blinkEvery == every {
		c.frame = Badge{Text: text, TextColor: fg, Background: bg}
		c.mu.Unlock()
		return
	}

	if c.blinkTimer != nil {
		c.blinkTimer.Stop()
	}
	c.blinkGen++
	gen := c.blinkGen
	c.blinkText = text
	c.blinkEvery = every
	c.frame = Badge{Text: text, TextColor: fg, Background: bg}
	c.visible.Store(true)
	c.blinkTimer = c.clock.AfterFunc(every, func() { c.blinkTick(gen) })
	c.mu.Unlock()

	c.renderer.Apply(Badge{Text: text, TextColor: fg, Background: bg})
}

func (c *Controller) blinkTick(gen int) {
	c.mu.Lock()
	if gen != c.blinkGen {
		c.mu.Unlock()
		return
	}

	shown := c.frame
	if !c.visible.Load() {
		c.visible.Store(true)
	} else {
		c.visible.Store(false)
		shown.Text = ""
	}
	c.blinkTimer = c.clock.AfterFunc(c.blinkEvery, func() { c.blinkTick(gen) })
	c.mu.Unlock()

	c.renderer.Apply(shown)
}

func (c *Controller) stopBlinkLocked() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopBlink()
}

// stopBlink must run under mu.
func (c *Controller) stopBlink() {
	if c.blinkTimer != nil {
		c.blinkTimer.Stop()
		c.blinkTimer = nil
	}
	c.blinkGen++
	c.blinkText = ""
	c.blinkEvery = 0
	c.visible.Store(true)
	c.loading.Store(false)
}
