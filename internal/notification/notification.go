// Package notification holds the user-facing notices queued as a side effect
// of store operations, ready for whatever UI layer displays them.
package notification

import (
	"sync"
	"time"
)

// Type classifies a notification for display.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
)

// Notification is a single user notice. A zero Time means the UI default.
type Notification struct {
	Message   string        `json:"message" yaml:"message"`
	Type      Type          `json:"type" yaml:"type"`
	Time      time.Duration `json:"time,omitempty" yaml:"time,omitempty"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}

// Notifier receives notifications pushed by the store.
type Notifier interface {
	Push(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Push calls f(n).
func (f NotifierFunc) Push(n Notification) { f(n) }

// Queue buffers notifications until drained and fans them out to subscribers.
type Queue struct {
	mu          sync.Mutex
	pending     []Notification
	subscribers map[chan Notification]struct{}
	now         func() time.Time
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		subscribers: make(map[chan Notification]struct{}),
		now:         time.Now,
	}
}

// Push stamps n and appends it to the queue.
func (q *Queue) Push(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = q.now().UTC()
	}
	q.pending = append(q.pending, n)

	for ch := range q.subscribers {
		select {
		case ch <- n:
		default:
		}
	}
}

// Pending returns a copy of the queued notifications without removing them.
func (q *Queue) Pending() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.pending))
	copy(out, q.pending)
	return out
}

// Drain removes and returns every queued notification in push order.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Subscribe delivers each pushed notification on the returned channel.
// Slow subscribers miss notifications rather than blocking Push.
func (q *Queue) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 10)

	q.mu.Lock()
	q.subscribers[ch] = struct{}{}
	q.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			delete(q.subscribers, ch)
			close(ch)
		})
	}
}
