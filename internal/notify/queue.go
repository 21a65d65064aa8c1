package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue holds live notifications in insertion order. Each pushed
// notification schedules its own expiry timer; dismissal and expiry are
// both idempotent, and a closed queue turns every operation into a no-op
// so late-firing timers are harmless.
type Queue struct {
	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
	closed bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{timers: make(map[string]*time.Timer)}
}

// Push appends n to the queue and schedules its expiry. A fresh id is
// assigned if n carries none, and the zero duration falls back to
// DefaultDuration. Returns the notification id.
func (q *Queue) Push(n Notification) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ""
	}

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Icon == "" {
		n.Icon = n.Category.Icon()
	}

	q.items = append(q.items, n)
	id := n.ID
	q.timers[id] = time.AfterFunc(n.Duration, func() { q.Remove(id) })
	return id
}

// Remove dismisses the notification with the given id. Unknown ids are a
// silent no-op; the pending expiry timer, if any, is cancelled.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// List returns the current notifications, oldest first.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of live notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close drains the queue and cancels all pending timers. Timers that
// already fired find a closed queue and do nothing.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
}
