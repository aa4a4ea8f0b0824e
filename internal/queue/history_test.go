package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averen/notifyd/internal/config"
	"github.com/averen/notifyd/internal/notification"
)

func TestHistory_MostRecentFirst(t *testing.T) {
	q, _ := newTestQueues(nil)

	q.Insert(rec("app", "one"))
	q.Insert(rec("app", "two"))
	q.Update(false)
	q.CloseByID(1, notification.ReasonDismissed)
	q.CloseByID(2, notification.ReasonDismissed)

	history := q.History()
	require.Len(t, history, 2)
	assert.Equal(t, "two", history[0].Summary)
	assert.Equal(t, "one", history[1].Summary)
}

func TestHistory_CapEvictsOldest(t *testing.T) {
	cfg := config.Default()
	cfg.Display.DisplayedLimit = 0
	cfg.Behavior.HistoryLength = 2
	q, _ := newTestQueues(cfg)

	for _, s := range []string{"one", "two", "three"} {
		q.Insert(rec("app", s))
	}
	q.Update(false)
	q.CloseAll(notification.ReasonDismissed)

	history := q.History()
	require.Len(t, history, 2)
	assert.Equal(t, "three", history[0].Summary)
	assert.Equal(t, "two", history[1].Summary)
}

func TestHistory_TransientDropped(t *testing.T) {
	q, _ := newTestQueues(nil)

	a := rec("app", "flash")
	a.Transient = true
	q.Insert(a)
	q.Update(false)
	q.CloseByID(a.ID, notification.ReasonDismissed)

	assert.EqualValues(t, 0, q.LenHistory())
	assert.EqualValues(t, 0, q.LenDisplayed())
}

func TestHistoryPop_ToDisplayed(t *testing.T) {
	q, c := newTestQueues(nil)

	q.Insert(rec("app", "hello"))
	q.Update(false)
	q.CloseByID(1, notification.ReasonDismissed)
	require.EqualValues(t, 1, q.LenHistory())

	c.advance(time.Minute)
	q.HistoryPop()

	assert.EqualValues(t, 0, q.LenHistory())
	displayed := q.Displayed()
	require.Len(t, displayed, 1)
	assert.Equal(t, "hello", displayed[0].Summary)
	assert.Equal(t, c.t, displayed[0].Timestamp)
	assert.Equal(t, c.t, displayed[0].ShownAt)
}

func TestHistoryPop_ToWaitingWhenFull(t *testing.T) {
	cfg := config.Default()
	cfg.Display.DisplayedLimit = 1
	q, _ := newTestQueues(cfg)

	q.Insert(rec("app", "old"))
	q.Update(false)
	q.CloseByID(1, notification.ReasonDismissed)

	q.Insert(rec("app", "current"))
	q.Update(false)
	require.EqualValues(t, 1, q.LenDisplayed())

	q.HistoryPop()
	assert.EqualValues(t, 1, q.LenWaiting())
	assert.Equal(t, "old", q.waiting[0].Summary)
	assert.True(t, q.waiting[0].ShownAt.IsZero())
}

func TestHistoryPop_StickyClearsTimeout(t *testing.T) {
	q, c := newTestQueues(nil)

	q.Insert(rec("app", "hello"))
	q.Update(false)
	q.CloseByID(1, notification.ReasonDismissed)

	q.HistoryPop()
	c.advance(time.Hour)
	q.CheckTimeouts(false, false)

	// Sticky history: a recalled record stays until dismissed.
	assert.EqualValues(t, 1, q.LenDisplayed())
}

func TestHistoryPop_NonStickyKeepsTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Display.DisplayedLimit = 0
	cfg.Behavior.StickyHistory = false
	q, c := newTestQueues(cfg)

	q.Insert(rec("app", "hello"))
	q.Update(false)
	q.CloseByID(1, notification.ReasonDismissed)

	q.HistoryPop()
	c.advance(6 * time.Second)
	q.CheckTimeouts(false, false)
	assert.EqualValues(t, 0, q.LenDisplayed())
	assert.EqualValues(t, 1, q.LenHistory())
}

func TestHistoryPop_Empty(t *testing.T) {
	q, _ := newTestQueues(nil)
	q.HistoryPop()
	assert.EqualValues(t, 0, q.LenDisplayed())
	assert.EqualValues(t, 0, q.LenWaiting())
}

func TestHistoryPushAll(t *testing.T) {
	q, _ := newTestQueues(nil)

	signals := 0
	q.SetCloseCallback(func(uint32, notification.CloseReason) { signals++ })

	q.Insert(rec("app", "one"))
	q.Insert(rec("app", "two"))
	q.Update(false)
	q.Insert(rec("app", "three"))

	q.HistoryPushAll()

	assert.EqualValues(t, 0, q.LenWaiting())
	assert.EqualValues(t, 0, q.LenDisplayed())
	assert.EqualValues(t, 3, q.LenHistory())
	// Shelving is not closing: no close signals go out.
	assert.Equal(t, 0, signals)
}
