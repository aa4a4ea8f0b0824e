package queue

import (
	"time"

	"github.com/averen/notifyd/internal/notification"
)

// Update is the periodic reconciliation pass: it promotes waiting records
// into the displayed queue until the displayed limit is reached. While
// paused, no promotions occur. While a fullscreen window has focus, only
// critical notifications are promoted; the rest stay waiting until the
// fullscreen state clears.
func (q *Queues) Update(fullscreen bool) {
	q.mustLive()
	if q.paused {
		return
	}

	i := 0
	for i < len(q.waiting) {
		if q.displayedLimit > 0 && uint(len(q.displayed)) >= q.displayedLimit {
			break
		}
		n := q.waiting[i]
		if fullscreen && n.Urgency != notification.UrgencyCritical {
			i++
			continue
		}
		q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
		n.ShownAt = q.now()
		q.displayed = append(q.displayed, n)
	}
}

// CheckTimeouts closes every displayed record whose computed expiry is at
// or before the current time, with reason expired. Transient records are
// also checked while still waiting. Records configured to never expire
// are skipped. This pass never promotes.
//
// The idle and fullscreen flags are remembered for NextDatachange; the
// transition into idle stamps the time that idle timeout extension counts
// from.
func (q *Queues) CheckTimeouts(idle, fullscreen bool) {
	q.mustLive()
	now := q.now()

	if idle && !q.idle {
		q.idleSince = now
	}
	q.idle = idle
	q.fullscreen = fullscreen

	st := q.currentState(now)

	var due []uint32
	for _, n := range q.displayed {
		if exp, ok := q.expiry(n, st); ok && !exp.After(now) {
			due = append(due, n.ID)
		}
	}
	for _, n := range q.waiting {
		if !n.Transient {
			continue
		}
		if exp, ok := q.expiry(n, st); ok && !exp.After(now) {
			due = append(due, n.ID)
		}
	}

	for _, id := range due {
		q.CloseByID(id, notification.ReasonExpired)
	}
}

// NextDatachange returns the delta from now until the queues next need
// re-evaluation: the nearest expiry of any waiting or displayed record,
// or the next age tick of a displayed record (every whole second once its
// age passes the show-age threshold, otherwise the moment it reaches the
// threshold). ok is false when no upcoming event exists. The delta is
// never negative; overdue events yield zero.
func (q *Queues) NextDatachange(now time.Time) (time.Duration, bool) {
	q.mustLive()

	var best time.Duration
	have := false
	consider := func(d time.Duration) {
		if d < 0 {
			d = 0
		}
		if !have || d < best {
			best = d
			have = true
		}
	}

	st := q.currentState(now)
	for _, list := range [][]*notification.Notification{q.waiting, q.displayed} {
		for _, n := range list {
			if exp, ok := q.expiry(n, st); ok {
				consider(exp.Sub(now))
			}
		}
	}

	if thr := q.cfg.Display.ShowAgeThreshold.Duration(); thr >= 0 {
		for _, n := range q.displayed {
			age := now.Sub(n.ShownAt)
			if age < thr {
				consider(thr - age)
			} else {
				consider(time.Second - age%time.Second)
			}
		}
	}

	return best, have
}
