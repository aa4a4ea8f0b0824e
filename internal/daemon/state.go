package daemon

import (
	"log/slog"
	"sync/atomic"

	"github.com/averen/notifyd/internal/notification"
)

// ScreenState reports the desktop state the timeout policy depends on.
// Implementations belong to the rendering/compositor side; the engine
// only reads the flags at the start of each pass.
type ScreenState interface {
	Idle() bool
	Fullscreen() bool
}

// ScreenStateTracker is a ScreenState fed by external collaborators
// (idle monitor, compositor hooks). Setters are safe to call from any
// goroutine; callers should Wake the engine after a change.
type ScreenStateTracker struct {
	idle       atomic.Bool
	fullscreen atomic.Bool
}

// NewScreenStateTracker returns a tracker with both flags off.
func NewScreenStateTracker() *ScreenStateTracker {
	return &ScreenStateTracker{}
}

// Idle reports whether the user is idle.
func (s *ScreenStateTracker) Idle() bool { return s.idle.Load() }

// Fullscreen reports whether a fullscreen window has focus.
func (s *ScreenStateTracker) Fullscreen() bool { return s.fullscreen.Load() }

// SetIdle updates the idle flag.
func (s *ScreenStateTracker) SetIdle(v bool) { s.idle.Store(v) }

// SetFullscreen updates the fullscreen flag.
func (s *ScreenStateTracker) SetFullscreen(v bool) { s.fullscreen.Store(v) }

// Renderer receives the displayed queue after every reconciliation pass.
// Painting popups is the rendering collaborator's job; the daemon ships
// a logging renderer so it is usable headless.
type Renderer interface {
	Render(displayed []*notification.Notification)
}

// LogRenderer logs the visible set whenever it changes.
type LogRenderer struct {
	logger  *slog.Logger
	lastIDs []uint32
}

// NewLogRenderer creates a renderer that logs to the given logger.
func NewLogRenderer(logger *slog.Logger) *LogRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRenderer{logger: logger}
}

// Render logs the displayed notifications if the set changed since the
// last pass.
func (r *LogRenderer) Render(displayed []*notification.Notification) {
	ids := make([]uint32, len(displayed))
	for i, n := range displayed {
		ids[i] = n.ID
	}
	if equalIDs(ids, r.lastIDs) {
		return
	}
	r.lastIDs = ids

	r.logger.Info("visible set changed", "count", len(displayed))
	for _, n := range displayed {
		r.logger.Info("displayed",
			"id", n.ID,
			"app", n.AppName,
			"summary", n.DisplaySummary(),
			"urgency", n.UrgencyName,
		)
	}
}

func equalIDs(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
