// Package notify keeps the short-lived messages shown in the footer.
package notify

import (
	"slices"
	"sync"
	"time"
)

// Level classifies a toast.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 4 * time.Second

const maxToasts = 3

// Toast is one message.
type Toast struct {
	// ID groups related toasts; showing a toast with an existing ID replaces it.
	ID      string
	Level   Level
	Text    string
	Expires time.Time
}

// Queue holds the visible toasts. It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
}

// NewQueue returns an empty queue. A non-positive ttl uses DefaultTTL.
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, now: time.Now}
}

// Show adds a toast, replacing any toast with the same non-empty id. Only the
// newest few toasts are kept.
func (q *Queue) Show(id string, level Level, text string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t := Toast{ID: id, Level: level, Text: text, Expires: q.now().Add(q.ttl)}
	if id != "" {
		q.toasts = slices.DeleteFunc(q.toasts, func(existing Toast) bool { return existing.ID == id })
	}
	q.toasts = append(q.toasts, t)
	if len(q.toasts) > maxToasts {
		q.toasts = slices.Delete(q.toasts, 0, len(q.toasts)-maxToasts)
	}
}

// Expire drops toasts whose time has passed and reports whether any were
// removed.
func (q *Queue) Expire() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	before := len(q.toasts)
	q.toasts = slices.DeleteFunc(q.toasts, func(t Toast) bool { return !now.Before(t.Expires) })
	return len(q.toasts) != before
}

// Dismiss removes the toast with id.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = slices.DeleteFunc(q.toasts, func(t Toast) bool { return t.ID == id })
}

// Active returns the visible toasts, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.toasts)
}

// Latest returns the newest toast.
func (q *Queue) Latest() (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.toasts) == 0 {
		return Toast{}, false
	}
	return q.toasts[len(q.toasts)-1], true
}
