package daemon

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averen/notifyd/internal/config"
	"github.com/averen/notifyd/internal/notification"
	"github.com/averen/notifyd/internal/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startEngine runs the engine loop in the background and returns a stop
// function that cancels it and waits for Run to return.
func startEngine(t *testing.T, e *Engine) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("engine did not stop")
		}
	}
}

func testRecord(summary string) *notification.Notification {
	n := notification.New()
	n.AppName = "test"
	n.Summary = summary
	n.Timeout = time.Minute
	return n
}

func TestEngine_InsertAndPromote(t *testing.T) {
	e := New(config.Default(), nil, nil, discardLogger())
	stop := startEngine(t, e)
	defer stop()

	var id uint32
	e.Exec(func(q *queue.Queues) { id = q.Insert(testRecord("hello")) })
	require.EqualValues(t, 1, id)

	// The loop reconciles after every command, so a later Exec observes
	// the record already promoted.
	var displayed uint
	e.Exec(func(q *queue.Queues) { displayed = q.LenDisplayed() })
	assert.EqualValues(t, 1, displayed)
}

func TestEngine_ExpiryWakesLoop(t *testing.T) {
	e := New(config.Default(), nil, nil, discardLogger())
	stop := startEngine(t, e)
	defer stop()

	e.Exec(func(q *queue.Queues) {
		n := testRecord("short")
		n.Timeout = 20 * time.Millisecond
		q.Insert(n)
	})

	require.Eventually(t, func() bool {
		_, displayed, history := e.Counts()
		return displayed == 0 && history == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestEngine_ControlBackend(t *testing.T) {
	e := New(config.Default(), nil, nil, discardLogger())
	stop := startEngine(t, e)
	defer stop()

	assert.False(t, e.Paused())
	e.PauseOn()
	assert.True(t, e.Paused())

	e.Exec(func(q *queue.Queues) { q.Insert(testRecord("held")) })
	waiting, displayed, _ := e.Counts()
	assert.EqualValues(t, 1, waiting)
	assert.EqualValues(t, 0, displayed)

	e.PauseOff()
	waiting, displayed, _ = e.Counts()
	assert.EqualValues(t, 0, waiting)
	assert.EqualValues(t, 1, displayed)

	e.CloseAll()
	_, displayed, history := e.Counts()
	assert.EqualValues(t, 0, displayed)
	assert.EqualValues(t, 1, history)

	e.HistoryPop()
	_, displayed, history = e.Counts()
	assert.EqualValues(t, 1, displayed)
	assert.EqualValues(t, 0, history)
}

func TestEngine_SetDisplayedLimit(t *testing.T) {
	e := New(config.Default(), nil, nil, discardLogger())
	stop := startEngine(t, e)
	defer stop()

	e.SetDisplayedLimit(1)
	e.Exec(func(q *queue.Queues) {
		q.Insert(testRecord("one"))
		q.Insert(testRecord("two"))
	})

	waiting, displayed, _ := e.Counts()
	assert.EqualValues(t, 1, waiting)
	assert.EqualValues(t, 1, displayed)
}

func TestEngine_DisplayedJSON(t *testing.T) {
	e := New(config.Default(), nil, nil, discardLogger())
	stop := startEngine(t, e)
	defer stop()

	e.Exec(func(q *queue.Queues) { q.Insert(testRecord("hello")) })

	data, err := e.DisplayedJSON()
	require.NoError(t, err)

	var records []notification.Notification
	require.NoError(t, json.Unmarshal([]byte(data), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0].Summary)
}

func TestEngine_FullscreenHoldsNormal(t *testing.T) {
	state := NewScreenStateTracker()
	state.SetFullscreen(true)

	e := New(config.Default(), state, nil, discardLogger())
	stop := startEngine(t, e)
	defer stop()

	e.Exec(func(q *queue.Queues) { q.Insert(testRecord("held")) })
	waiting, displayed, _ := e.Counts()
	assert.EqualValues(t, 1, waiting)
	assert.EqualValues(t, 0, displayed)

	state.SetFullscreen(false)
	e.Wake()

	require.Eventually(t, func() bool {
		_, displayed, _ := e.Counts()
		return displayed == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestScreenStateTracker(t *testing.T) {
	s := NewScreenStateTracker()
	assert.False(t, s.Idle())
	assert.False(t, s.Fullscreen())

	s.SetIdle(true)
	s.SetFullscreen(true)
	assert.True(t, s.Idle())
	assert.True(t, s.Fullscreen())
}
