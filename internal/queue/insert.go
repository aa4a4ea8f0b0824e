package queue

import (
	"github.com/averen/notifyd/internal/notification"
)

// Insert accepts a fully initialized record into the queues, respecting
// duplicate stacking and replacement.
//
//   - n.ID == 0: n is new. It may be collapsed into an equivalent live
//     record (duplicate stacking, returns 0), replace a record sharing
//     its stack tag in place (returns the adopted id), or be appended to
//     the waiting queue under a fresh id.
//   - n.ID != 0: n replaces the record with that id in place. If no such
//     record exists, n is inserted fresh keeping the requested id.
//
// Ownership of n transfers to the queues. Returns 0 when n was dismissed
// as a duplicate, otherwise the final value of n.ID.
func (q *Queues) Insert(n *notification.Notification) uint32 {
	q.mustLive()
	if n == nil {
		return 0
	}
	n.Timestamp = q.now()

	if n.ID != 0 {
		if q.replaceInPlace(n) {
			return n.ID
		}
		// Requested id is free everywhere: honor it but keep the
		// counter ahead so it is never handed out again.
		q.bumpNextID(n.ID)
		q.waiting = append(q.waiting, n)
		return n.ID
	}

	if n.StackTag != "" {
		if old := q.findStackTag(n); old != nil {
			n.ID = old.ID
			n.DupCount = old.DupCount
			q.replaceInPlace(n)
			return n.ID
		}
	}

	if q.cfg.Behavior.StackDuplicates {
		if dup := q.findDuplicate(n); dup != nil {
			dup.DupCount++
			dup.Timestamp = n.Timestamp
			if !dup.ShownAt.IsZero() {
				// Restart the visible timeout.
				dup.ShownAt = n.Timestamp
			}
			return 0
		}
	}

	n.ID = q.assignID()
	q.waiting = append(q.waiting, n)
	return n.ID
}

// ReplaceByID replaces the record whose id matches n.ID, splicing n into
// the exact position the old record occupied. Reports whether a matching
// record was found.
func (q *Queues) ReplaceByID(n *notification.Notification) bool {
	q.mustLive()
	if n == nil || n.ID == 0 {
		return false
	}
	n.Timestamp = q.now()
	return q.replaceInPlace(n)
}

// replaceInPlace splices n over the record with the same id, in whichever
// queue and position that record occupies. A record replaced while
// displayed restarts its visible timeout.
func (q *Queues) replaceInPlace(n *notification.Notification) bool {
	for i, old := range q.waiting {
		if old.ID == n.ID {
			n.ShownAt = old.ShownAt
			q.waiting[i] = n
			return true
		}
	}
	for i, old := range q.displayed {
		if old.ID == n.ID {
			n.ShownAt = q.now()
			q.displayed[i] = n
			return true
		}
	}
	for i, old := range q.history {
		if old.ID == n.ID {
			n.ShownAt = old.ShownAt
			q.history[i] = n
			return true
		}
	}
	return false
}

// findStackTag returns the live record sharing n's app name and stack
// tag, or nil.
func (q *Queues) findStackTag(n *notification.Notification) *notification.Notification {
	match := func(old *notification.Notification) bool {
		return old.StackTag == n.StackTag && old.AppName == n.AppName
	}
	for _, old := range q.waiting {
		if match(old) {
			return old
		}
	}
	for _, old := range q.displayed {
		if match(old) {
			return old
		}
	}
	return nil
}

// findDuplicate returns the live record n would stack onto, or nil.
func (q *Queues) findDuplicate(n *notification.Notification) *notification.Notification {
	for _, old := range q.waiting {
		if old.IsDuplicateOf(n) {
			return old
		}
	}
	for _, old := range q.displayed {
		if old.IsDuplicateOf(n) {
			return old
		}
	}
	return nil
}

// CloseByID closes the record with the given id: it is removed from
// waiting or displayed, pushed to history, and reported through the close
// callback. Closing an id that is not live (unknown, or already closed)
// is a no-op, which makes close idempotent per id.
func (q *Queues) CloseByID(id uint32, reason notification.CloseReason) {
	q.mustLive()
	if id == 0 {
		return
	}
	n, ok := q.removeLive(id)
	if !ok {
		return
	}
	q.HistoryPush(n)
	if q.onClose != nil {
		q.onClose(id, reason)
	}
}

// Close closes the given record. See CloseByID.
func (q *Queues) Close(n *notification.Notification, reason notification.CloseReason) {
	q.mustLive()
	if n == nil {
		return
	}
	q.CloseByID(n.ID, reason)
}

// CloseAll closes every waiting and displayed record with the given
// reason.
func (q *Queues) CloseAll(reason notification.CloseReason) {
	q.mustLive()
	ids := make([]uint32, 0, len(q.waiting)+len(q.displayed))
	for _, n := range q.waiting {
		ids = append(ids, n.ID)
	}
	for _, n := range q.displayed {
		ids = append(ids, n.ID)
	}
	for _, id := range ids {
		q.CloseByID(id, reason)
	}
}
