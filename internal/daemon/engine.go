package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/averen/notifyd/internal/config"
	"github.com/averen/notifyd/internal/queue"
)

// Engine owns the queues and serializes every access to them through its
// event loop. D-Bus handlers post closures with Exec; the loop runs them
// between reconciliation passes, so the queues see a single logical
// owner and need no locking.
type Engine struct {
	cfg      *config.Config
	queues   *queue.Queues
	state    ScreenState
	renderer Renderer
	logger   *slog.Logger

	cmds chan func(q *queue.Queues)
	wake chan struct{}
}

// New creates an engine around a fresh set of queues.
func New(cfg *config.Config, state ScreenState, renderer Renderer, logger *slog.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if state == nil {
		state = NewScreenStateTracker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = NewLogRenderer(logger)
	}
	return &Engine{
		cfg:      cfg,
		queues:   queue.New(cfg),
		state:    state,
		renderer: renderer,
		logger:   logger,
		cmds:     make(chan func(q *queue.Queues)),
		wake:     make(chan struct{}, 1),
	}
}

// Queues returns the underlying queues. Only for wiring callbacks before
// Run starts; afterwards all access must go through Exec.
func (e *Engine) Queues() *queue.Queues {
	return e.queues
}

// Exec runs fn inside the event loop and waits for it to finish. It must
// not be called before Run has started, or from within the loop itself.
func (e *Engine) Exec(fn func(q *queue.Queues)) {
	done := make(chan struct{})
	e.cmds <- func(q *queue.Queues) {
		defer close(done)
		fn(q)
	}
	<-done
}

// Wake nudges the loop into an immediate reconciliation pass, e.g. after
// the idle or fullscreen state changed.
func (e *Engine) Wake() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Run drives the queues until ctx is cancelled, then tears them down.
// Each pass runs the timeout check, the promotion pass, and the renderer,
// then sleeps for at most the delta reported by NextDatachange.
func (e *Engine) Run(ctx context.Context) error {
	defer e.queues.Teardown()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		idle := e.state.Idle()
		fullscreen := e.state.Fullscreen()

		e.queues.CheckTimeouts(idle, fullscreen)
		e.queues.Update(fullscreen)
		e.renderer.Render(e.queues.Displayed())

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		var expired <-chan time.Time
		if d, ok := e.queues.NextDatachange(time.Now()); ok {
			timer.Reset(d)
			expired = timer.C
		}

		select {
		case <-ctx.Done():
			e.logger.Info("engine stopping")
			return ctx.Err()
		case cmd := <-e.cmds:
			cmd(e.queues)
		case <-e.wake:
		case <-expired:
		}
	}
}
