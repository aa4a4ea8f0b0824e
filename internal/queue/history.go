package queue

import (
	"time"

	"github.com/averen/notifyd/internal/notification"
)

// HistoryPush archives a record at the front of the history queue (most
// recent first). The record must already be removed from its previous
// queue. Transient records are dropped instead of archived. When the
// configured history length is exceeded, the oldest entry is evicted.
func (q *Queues) HistoryPush(n *notification.Notification) {
	q.mustLive()
	if n == nil || n.Transient {
		return
	}
	q.history = append([]*notification.Notification{n}, q.history...)

	if limit := q.cfg.Behavior.HistoryLength; limit > 0 {
		for len(q.history) > limit {
			q.history = q.history[:len(q.history)-1]
		}
	}
}

// HistoryPop recalls the most recently archived record: it is removed
// from history and re-inserted into the displayed queue if the displayed
// limit allows, otherwise into the waiting queue. With sticky history
// enabled the recalled record never expires. No-op on empty history.
func (q *Queues) HistoryPop() {
	q.mustLive()
	if len(q.history) == 0 {
		return
	}
	n := q.history[0]
	q.history = q.history[1:]

	now := q.now()
	n.Timestamp = now
	if q.cfg.Behavior.StickyHistory {
		n.Timeout = 0
	}

	if q.displayedLimit == 0 || uint(len(q.displayed)) < q.displayedLimit {
		n.ShownAt = now
		q.displayed = append(q.displayed, n)
	} else {
		n.ShownAt = time.Time{}
		q.waiting = append(q.waiting, n)
	}
}

// HistoryPushAll archives every displayed and waiting record in arrival
// order, leaving both queues empty. No close signals are emitted; the
// records were not closed, only shelved.
func (q *Queues) HistoryPushAll() {
	q.mustLive()
	displayed := q.displayed
	waiting := q.waiting
	q.displayed = nil
	q.waiting = nil
	for _, n := range displayed {
		q.HistoryPush(n)
	}
	for _, n := range waiting {
		q.HistoryPush(n)
	}
}
