package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averen/notifyd/internal/config"
	"github.com/averen/notifyd/internal/notification"
)

func TestInsert_AssignsSequentialIDs(t *testing.T) {
	q, _ := newTestQueues(nil)

	assert.EqualValues(t, 1, q.Insert(rec("app", "one")))
	assert.EqualValues(t, 2, q.Insert(rec("app", "two")))
	assert.EqualValues(t, 2, q.LenWaiting())
}

func TestInsert_DuplicateStacking(t *testing.T) {
	q, _ := newTestQueues(nil)

	a := rec("app", "hello")
	id := q.Insert(a)
	require.EqualValues(t, 1, id)

	b := rec("app", "hello")
	assert.EqualValues(t, 0, q.Insert(b))

	assert.EqualValues(t, 1, q.LenWaiting()+q.LenDisplayed())
	assert.Equal(t, 1, a.DupCount)
}

func TestInsert_DuplicateStackingOnDisplayed(t *testing.T) {
	q, c := newTestQueues(nil)

	a := rec("app", "hello")
	q.Insert(a)
	q.Update(false)
	shownAt := a.ShownAt

	c.advance(2 * time.Second)
	assert.EqualValues(t, 0, q.Insert(rec("app", "hello")))

	assert.Equal(t, 1, a.DupCount)
	// The visible timeout restarts for the stacked record.
	assert.True(t, a.ShownAt.After(shownAt))
	assert.EqualValues(t, 1, q.LenDisplayed())
}

func TestInsert_DuplicateStackingDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Display.DisplayedLimit = 0
	cfg.Behavior.StackDuplicates = false
	q, _ := newTestQueues(cfg)

	q.Insert(rec("app", "hello"))
	assert.EqualValues(t, 2, q.Insert(rec("app", "hello")))
	assert.EqualValues(t, 2, q.LenWaiting())
}

func TestInsert_StackTagReplacesInPlace(t *testing.T) {
	q, _ := newTestQueues(nil)

	a := rec("app", "volume 10%")
	a.StackTag = "volume"
	require.EqualValues(t, 1, q.Insert(a))
	q.Insert(rec("app", "unrelated"))
	q.Update(false)

	b := rec("app", "volume 20%")
	b.StackTag = "volume"
	assert.EqualValues(t, 1, q.Insert(b))

	displayed := q.Displayed()
	require.Len(t, displayed, 2)
	assert.Equal(t, "volume 20%", displayed[0].Summary)
	assert.EqualValues(t, 1, displayed[0].ID)
}

func TestInsert_ExplicitIDReplacesInPlace(t *testing.T) {
	q, _ := newTestQueues(nil)

	q.Insert(rec("app", "one"))
	q.Insert(rec("app", "two"))
	q.Insert(rec("app", "three"))
	q.Update(false)

	n := rec("app", "two updated")
	n.ID = 2
	assert.EqualValues(t, 2, q.Insert(n))

	displayed := q.Displayed()
	require.Len(t, displayed, 3)
	assert.Equal(t, "two updated", displayed[1].Summary)
	assert.EqualValues(t, 2, displayed[1].ID)
	requireUniqueIDs(t, q)
}

func TestInsert_ExplicitUnknownIDKeepsID(t *testing.T) {
	q, _ := newTestQueues(nil)

	n := rec("app", "hello")
	n.ID = 42
	assert.EqualValues(t, 42, q.Insert(n))
	assert.EqualValues(t, 1, q.LenWaiting())

	// The counter stays ahead of externally supplied ids.
	assert.EqualValues(t, 43, q.Insert(rec("app", "next")))
}

func TestReplaceByID(t *testing.T) {
	q, _ := newTestQueues(nil)

	q.Insert(rec("app", "one"))
	q.Insert(rec("app", "two"))
	q.Update(false)

	n := rec("app", "one updated")
	n.ID = 1
	assert.True(t, q.ReplaceByID(n))

	displayed := q.Displayed()
	assert.Equal(t, "one updated", displayed[0].Summary)
	assert.EqualValues(t, 1, displayed[0].ID)
}

func TestReplaceByID_Unknown(t *testing.T) {
	q, _ := newTestQueues(nil)

	n := rec("app", "hello")
	n.ID = 99
	assert.False(t, q.ReplaceByID(n))
	assert.EqualValues(t, 0, q.LenWaiting())
}

func TestReplaceByID_RestartsDisplayedTimeout(t *testing.T) {
	q, c := newTestQueues(nil)

	q.Insert(rec("app", "one"))
	q.Update(false)

	c.advance(4 * time.Second)
	n := rec("app", "one updated")
	n.ID = 1
	require.True(t, q.ReplaceByID(n))

	// The replacement restarts the clock: 4s later the original would
	// have expired, the replacement has not.
	c.advance(4 * time.Second)
	q.CheckTimeouts(false, false)
	assert.EqualValues(t, 1, q.LenDisplayed())

	c.advance(2 * time.Second)
	q.CheckTimeouts(false, false)
	assert.EqualValues(t, 0, q.LenDisplayed())
}

func TestClose_Idempotent(t *testing.T) {
	q, _ := newTestQueues(nil)

	signals := 0
	q.SetCloseCallback(func(id uint32, reason notification.CloseReason) {
		signals++
		assert.EqualValues(t, 1, id)
		assert.Equal(t, notification.ReasonDismissed, reason)
	})

	q.Insert(rec("app", "hello"))
	q.Update(false)

	q.CloseByID(1, notification.ReasonDismissed)
	q.CloseByID(1, notification.ReasonDismissed)

	assert.Equal(t, 1, signals)
	assert.EqualValues(t, 1, q.LenHistory())
	assert.EqualValues(t, 0, q.LenDisplayed())
}

func TestClose_UnknownIDIsNoop(t *testing.T) {
	q, _ := newTestQueues(nil)

	signals := 0
	q.SetCloseCallback(func(uint32, notification.CloseReason) { signals++ })

	q.CloseByID(7, notification.ReasonDismissed)
	q.CloseByID(0, notification.ReasonDismissed)

	assert.Equal(t, 0, signals)
	assert.EqualValues(t, 0, q.LenHistory())
}

func TestClose_FromWaiting(t *testing.T) {
	q, _ := newTestQueues(nil)

	a := rec("app", "hello")
	id := q.Insert(a)
	q.Close(a, notification.ReasonClosed)

	assert.EqualValues(t, 0, q.LenWaiting())
	assert.EqualValues(t, 1, q.LenHistory())
	assert.Equal(t, id, q.History()[0].ID)
}

func TestCloseAll(t *testing.T) {
	q, _ := newTestQueues(nil)

	signals := 0
	q.SetCloseCallback(func(uint32, notification.CloseReason) { signals++ })

	q.Insert(rec("app", "one"))
	q.Insert(rec("app", "two"))
	q.Update(false)
	q.Insert(rec("app", "three"))

	q.CloseAll(notification.ReasonDismissed)

	assert.Equal(t, 3, signals)
	assert.EqualValues(t, 0, q.LenWaiting())
	assert.EqualValues(t, 0, q.LenDisplayed())
	assert.EqualValues(t, 3, q.LenHistory())
}
