package game

import (
	"context"
	"sync"
	"time"

	"github.com/verte-zerg/vimdrill/internal/editor"
	"github.com/verte-zerg/vimdrill/internal/log"
)

const inputQueueSize = 64

type event struct {
	key     editor.Key
	timer   Timer
	timerID int
	isTimer bool
}

// Runner owns a Session and processes key presses and timer firings one at a
// time on the goroutine that calls Run. Other goroutines interact with it only
// through Send and Close.
type Runner struct {
	session Session
	publish func(Snapshot)
	now     func() time.Time

	events    chan event
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	timers map[int]*time.Timer
	nextID int
	closed bool
}

// NewRunner wraps session. publish receives a snapshot after every processed
// event and must not block for long.
func NewRunner(session Session, publish func(Snapshot)) *Runner {
	return &Runner{
		session: session,
		publish: publish,
		now:     time.Now,
		events:  make(chan event, inputQueueSize),
		done:    make(chan struct{}),
		timers:  map[int]*time.Timer{},
	}
}

// Send queues a key press. It reports false once the runner has stopped.
func (r *Runner) Send(k editor.Key) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.events <- event{key: k}:
		return true
	case <-r.done:
		return false
	}
}

// Run processes events until ctx is cancelled or Close is called. Pending
// timers are cancelled on return.
func (r *Runner) Run(ctx context.Context) error {
	defer r.Close()
	log.Info(log.CatGame, "game started", "game", r.session.opts.GameID, "challenges", len(r.session.challenges))
	r.publish(r.session.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		case ev := <-r.events:
			r.handle(ev)
		}
	}
}

// Close stops the runner and cancels outstanding timers. It is safe to call
// more than once and from any goroutine.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.mu.Lock()
		defer r.mu.Unlock()
		r.closed = true
		for id, t := range r.timers {
			t.Stop()
			delete(r.timers, id)
		}
	})
}

// Pending returns the number of scheduled timers that have not fired.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

func (r *Runner) handle(ev event) {
	prev := r.session
	var timers []Timer
	if ev.isTimer {
		r.forget(ev.timerID)
		r.session, timers = r.session.Fire(ev.timer, r.now())
		log.Debug(log.CatGame, "timer fired", "kind", ev.timer.Kind, "epoch", ev.timer.Epoch, "phase", r.session.phase)
	} else {
		r.session, timers = r.session.HandleKey(ev.key, r.now())
		log.Debug(log.CatEditor, "key", "key", ev.key, "mode", r.session.editor.Mode, "buffer", r.session.editor.KeyBuffer)
	}
	if prev.phase != PhaseCompleted && r.session.phase == PhaseCompleted {
		log.Info(log.CatGame, "challenge completed",
			"game", r.session.opts.GameID,
			"index", r.session.index,
			"total", r.session.lastAward.Total(),
			"score", r.session.score)
	}
	for _, t := range timers {
		r.schedule(t)
	}
	r.publish(r.session.Snapshot())
}

func (r *Runner) schedule(t Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.nextID++
	id := r.nextID
	r.timers[id] = time.AfterFunc(t.Delay, func() {
		select {
		case r.events <- event{timer: t, timerID: id, isTimer: true}:
		case <-r.done:
		}
	})
}

func (r *Runner) forget(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, id)
}
