// Package queue implements the three-stage notification queue model:
// records are accepted into the waiting queue, promoted to the displayed
// queue under the displayed limit, and archived to the history queue when
// they close. The engine is timer-driven: the caller runs CheckTimeouts
// and Update from its event loop and sleeps for at most the delta returned
// by NextDatachange.
//
// Queues has no internal locking. It is designed for a single logical
// owner; the daemon serializes all access through its event loop.
package queue

import (
	"time"

	"github.com/averen/notifyd/internal/config"
	"github.com/averen/notifyd/internal/notification"
)

// CloseCallback is invoked once for every record that leaves the waiting
// or displayed queue via a close operation.
type CloseCallback func(id uint32, reason notification.CloseReason)

// Queues owns the waiting, displayed, and history queues. The three
// queues partition all live records: an id never appears in two of them
// at once. Waiting and history keep arrival order (history most-recent
// first), displayed keeps promotion order.
type Queues struct {
	cfg *config.Config

	waiting   []*notification.Notification
	displayed []*notification.Notification
	history   []*notification.Notification

	displayedLimit uint
	paused         bool

	// Desktop state as of the last CheckTimeouts call. idleSince is
	// the time the idle flag last flipped on; timeouts of records
	// shown before then count from it instead.
	idle       bool
	fullscreen bool
	idleSince  time.Time

	nextID  uint32
	onClose CloseCallback

	// now is replaceable in tests.
	now func() time.Time

	torn bool
}

// New creates the queues. Call Teardown before discarding; any use after
// Teardown panics.
func New(cfg *config.Config) *Queues {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Queues{
		cfg:            cfg,
		displayedLimit: cfg.Display.DisplayedLimit,
		nextID:         1,
		now:            time.Now,
	}
}

// Teardown drops all records from all three queues. The Queues must not
// be used afterwards.
func (q *Queues) Teardown() {
	q.mustLive()
	q.waiting = nil
	q.displayed = nil
	q.history = nil
	q.torn = true
}

// UpdateConfig swaps in a new configuration. The displayed limit takes
// effect on the next Update pass; it never evicts already-displayed
// records.
func (q *Queues) UpdateConfig(cfg *config.Config) {
	q.mustLive()
	if cfg == nil {
		return
	}
	q.cfg = cfg
	q.displayedLimit = cfg.Display.DisplayedLimit
}

// SetCloseCallback sets the callback invoked when a record is closed.
func (q *Queues) SetCloseCallback(fn CloseCallback) {
	q.mustLive()
	q.onClose = fn
}

// SetDisplayedLimit sets the maximum number of displayed notifications.
// 0 means unlimited. Takes effect on the next Update pass.
func (q *Queues) SetDisplayedLimit(limit uint) {
	q.mustLive()
	q.displayedLimit = limit
}

// Displayed returns a snapshot of the displayed queue in promotion order.
// The returned slice is the caller's; the records are not.
func (q *Queues) Displayed() []*notification.Notification {
	q.mustLive()
	out := make([]*notification.Notification, len(q.displayed))
	copy(out, q.displayed)
	return out
}

// History returns a snapshot of the history queue, most recent first.
func (q *Queues) History() []*notification.Notification {
	q.mustLive()
	out := make([]*notification.Notification, len(q.history))
	copy(out, q.history)
	return out
}

// LenWaiting returns the number of notifications waiting to be displayed.
func (q *Queues) LenWaiting() uint {
	q.mustLive()
	return uint(len(q.waiting))
}

// LenDisplayed returns the number of notifications currently shown.
func (q *Queues) LenDisplayed() uint {
	q.mustLive()
	return uint(len(q.displayed))
}

// LenHistory returns the number of notifications in history.
func (q *Queues) LenHistory() uint {
	q.mustLive()
	return uint(len(q.history))
}

// PauseOn suspends promotion and eviction decisions. Insertion and
// closing keep working; existing displayed records stay put.
func (q *Queues) PauseOn() {
	q.mustLive()
	q.paused = true
}

// PauseOff resumes queue management. Call Update afterwards to promote
// anything that accumulated in the waiting queue.
func (q *Queues) PauseOff() {
	q.mustLive()
	q.paused = false
}

// Paused reports whether queue management is paused.
func (q *Queues) Paused() bool {
	q.mustLive()
	return q.paused
}

// assignID hands out the next id. Ids are unique for the lifetime of the
// process; 0 is never assigned.
func (q *Queues) assignID() uint32 {
	id := q.nextID
	q.nextID++
	return id
}

// bumpNextID keeps the counter ahead of externally supplied ids.
func (q *Queues) bumpNextID(id uint32) {
	if id >= q.nextID {
		q.nextID = id + 1
	}
}

// findLive returns the record with the given id from waiting or
// displayed, or nil.
func (q *Queues) findLive(id uint32) *notification.Notification {
	for _, n := range q.waiting {
		if n.ID == id {
			return n
		}
	}
	for _, n := range q.displayed {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// removeLive removes and returns the record with the given id from
// waiting or displayed.
func (q *Queues) removeLive(id uint32) (*notification.Notification, bool) {
	for i, n := range q.waiting {
		if n.ID == id {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return n, true
		}
	}
	for i, n := range q.displayed {
		if n.ID == id {
			q.displayed = append(q.displayed[:i], q.displayed[i+1:]...)
			return n, true
		}
	}
	return nil, false
}

// mustLive is the fail-fast precondition check for use between New and
// Teardown.
func (q *Queues) mustLive() {
	if q == nil || q.torn {
		panic("queue: use after Teardown (or before New)")
	}
}
