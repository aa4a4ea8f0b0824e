package queue

import (
	"time"

	"github.com/averen/notifyd/internal/notification"
)

// expiryState carries the desktop state a timeout evaluation depends on.
type expiryState struct {
	idle       bool
	idleSince  time.Time
	fullscreen bool
	now        time.Time
}

// expiry computes the absolute time at which n times out. ok is false
// when the record never expires.
//
// Rules, in order:
//   - a zero configured duration never expires, regardless of desktop
//     state;
//   - while fullscreen, transient records use the configured fullscreen
//     override duration instead of their own (0 disables the override);
//   - while idle, the duration counts from the time idle began rather
//     than from when the record was shown, clamped to never fall before
//     now, so a notification cannot silently expire while the user is
//     away;
//   - otherwise the duration counts from the shown time, or from the
//     insertion time for records never promoted.
func (q *Queues) expiry(n *notification.Notification, st expiryState) (time.Time, bool) {
	if n.Timeout <= 0 {
		return time.Time{}, false
	}
	timeout := n.Timeout
	if st.fullscreen && n.Transient {
		if o := q.cfg.Timeouts.TransientFullscreen.Duration(); o > 0 {
			timeout = o
		}
	}

	base := n.ShownAt
	if base.IsZero() {
		base = n.Timestamp
	}
	if st.idle && st.idleSince.After(base) {
		base = st.idleSince
	}

	exp := base.Add(timeout)
	if exp.Before(st.now) && st.idle {
		exp = st.now
	}
	return exp, true
}

// currentState snapshots the desktop state recorded by the last
// CheckTimeouts call.
func (q *Queues) currentState(now time.Time) expiryState {
	return expiryState{
		idle:       q.idle,
		idleSince:  q.idleSince,
		fullscreen: q.fullscreen,
		now:        now,
	}
}
