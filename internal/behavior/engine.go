package behavior

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/engage/internal/notify"
)

const (
	fastClickWindow = 2 * time.Second
	defaultTick     = time.Second
)

// Engine is the event ingestion surface. One instance owns one session's
// state; construct it at application start and hand it to collaborators
// (no package-level singleton). A mutex serializes every API call and
// timer callback, so each operation runs to completion before the next.
type Engine struct {
	mu    sync.Mutex
	state State

	queue     *notify.Queue
	persister Persister
	log       zerolog.Logger

	// lastClickAt backs the fast-click bonus. Engine-local on purpose:
	// the first click after a restart is always the baseline grant.
	lastClickAt time.Time

	tick time.Duration
	stop chan struct{}
	done chan struct{}

	now  func() time.Time
	intn func(int) int
}

// Options configures an Engine. Every field has a usable zero value; a
// nil Queue gets a fresh one and a nil Persister keeps state in memory.
type Options struct {
	Queue     *notify.Queue
	Persister Persister
	Logger    zerolog.Logger

	// TickInterval overrides the 1s clock tick. Tests only.
	TickInterval time.Duration
}

// New creates an Engine holding the default state. Call Load to restore
// a persisted session before Start.
func New(opts Options) *Engine {
	queue := opts.Queue
	if queue == nil {
		queue = notify.NewQueue()
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = defaultTick
	}
	return &Engine{
		state:     DefaultState(),
		queue:     queue,
		persister: opts.Persister,
		log:       opts.Logger,
		tick:      tick,
		now:       time.Now,
		intn:      rand.IntN,
	}
}

// Load restores the latest persisted snapshot, falling back to the
// default state when none exists or the stored payload is unusable.
// Called once per process lifetime, before Start.
func (e *Engine) Load(ctx context.Context) {
	if e.persister == nil {
		return
	}
	st, err := e.persister.LatestSnapshot(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("load behavior snapshot, starting fresh")
		return
	}
	if st == nil {
		return
	}

	e.mu.Lock()
	e.state = *st
	e.mu.Unlock()
}

// Start begins the 1 Hz session clock. Each tick advances
// timeSpentSeconds by one and persists, exactly like a synchronous API
// call. Ticks that land while the engine is busy are dropped, not queued.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop != nil {
		return
	}
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	go e.run(e.stop, e.done)
}

// Stop cancels the session clock and drains the notification queue.
// Outstanding notification expiry timers fire against the closed queue,
// which is a safe no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	stop, done := e.stop, e.done
	e.stop, e.done = nil, nil
	e.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	e.queue.Close()
}

func (e *Engine) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.tickOnce()
		}
	}
}

func (e *Engine) tickOnce() {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.state.Clone()
	st.TimeSpentSeconds++
	e.checkAchievements(&st)
	e.replace(st)
}

// Behavior returns a read-only copy of the current snapshot.
func (e *Engine) Behavior() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Notifications returns the live notification feed, oldest first.
func (e *Engine) Notifications() []notify.Notification {
	return e.queue.List()
}

// Dismiss removes a notification early. Unknown ids are a no-op.
func (e *Engine) Dismiss(id string) {
	e.queue.Remove(id)
}

// UpdateStreak records the consecutive-engagement counter computed by
// the hosting application. The engine never derives streaks itself; a
// growing streak fires a streak notification.
func (e *Engine) UpdateStreak(days int) {
	if days < 1 {
		days = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if days == e.state.Streak {
		return
	}
	grew := days > e.state.Streak
	st := e.state.Clone()
	st.Streak = days
	if grew && days > 1 {
		e.push(notify.Notification{
			Category: notify.CategoryStreak,
			Title:    "Streak!",
			Message:  fmt.Sprintf("%d days in a row", days),
		})
	}
	e.replace(st)
}

// IsAddicted reports the derived heavy-engagement flag.
func (e *Engine) IsAddicted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.IsAddicted()
}

// replace swaps in the next snapshot and persists it. Persistence faults
// are logged and swallowed; the in-memory snapshot stays authoritative.
// Callers hold e.mu.
func (e *Engine) replace(next State) {
	e.state = next
	if e.persister == nil {
		return
	}
	if err := e.persister.SaveSnapshot(context.Background(), next); err != nil {
		e.log.Error().Err(err).Msg("persist behavior snapshot")
	}
}

func (e *Engine) push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = e.now()
	}
	e.queue.Push(n)
}
