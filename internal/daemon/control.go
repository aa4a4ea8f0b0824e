package daemon

import (
	"encoding/json"

	"github.com/averen/notifyd/internal/notification"
	"github.com/averen/notifyd/internal/queue"
)

// The engine implements dbus.ControlBackend by funneling every request
// through Exec, so control calls observe the same serialized queue state
// as the transport handlers.

// PauseOn suspends queue management.
func (e *Engine) PauseOn() {
	e.Exec(func(q *queue.Queues) { q.PauseOn() })
}

// PauseOff resumes queue management.
func (e *Engine) PauseOff() {
	e.Exec(func(q *queue.Queues) { q.PauseOff() })
}

// Paused reports whether queue management is paused.
func (e *Engine) Paused() bool {
	var paused bool
	e.Exec(func(q *queue.Queues) { paused = q.Paused() })
	return paused
}

// CloseAll closes every waiting and displayed notification as dismissed.
func (e *Engine) CloseAll() {
	e.Exec(func(q *queue.Queues) { q.CloseAll(notification.ReasonDismissed) })
}

// HistoryPop recalls the most recently archived notification.
func (e *Engine) HistoryPop() {
	e.Exec(func(q *queue.Queues) { q.HistoryPop() })
}

// SetDisplayedLimit sets the maximum number of displayed notifications.
func (e *Engine) SetDisplayedLimit(limit uint32) {
	e.Exec(func(q *queue.Queues) { q.SetDisplayedLimit(uint(limit)) })
}

// Counts returns the waiting, displayed, and history queue lengths.
func (e *Engine) Counts() (waiting, displayed, history uint32) {
	e.Exec(func(q *queue.Queues) {
		waiting = uint32(q.LenWaiting())
		displayed = uint32(q.LenDisplayed())
		history = uint32(q.LenHistory())
	})
	return waiting, displayed, history
}

// DisplayedJSON returns the displayed queue as a JSON array.
func (e *Engine) DisplayedJSON() (string, error) {
	return e.recordsJSON(func(q *queue.Queues) []*notification.Notification {
		return q.Displayed()
	})
}

// HistoryJSON returns the history queue as a JSON array.
func (e *Engine) HistoryJSON() (string, error) {
	return e.recordsJSON(func(q *queue.Queues) []*notification.Notification {
		return q.History()
	})
}

func (e *Engine) recordsJSON(snapshot func(q *queue.Queues) []*notification.Notification) (string, error) {
	var data []byte
	var err error
	e.Exec(func(q *queue.Queues) {
		records := snapshot(q)
		out := make([]notification.Notification, len(records))
		for i, n := range records {
			out[i] = *n
		}
		data, err = json.Marshal(out)
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
