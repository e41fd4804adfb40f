// Package notify carries user-facing toasts from the backend client to
// whatever page the organizer sees next.
package notify

import (
	"sync"
	"time"

	"github.com/aribt/hackathon-cms/shared/logger"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifier must not block the caller.
type Notifier interface {
	Success(message string)
	Error(message string)
}

const defaultCapacity = 32

// Queue buffers notifications until the UI drains them. When full, the
// oldest notification is dropped.
type Queue struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Queue{capacity: capacity}
}

func (q *Queue) Success(message string) { q.push(LevelSuccess, message) }

func (q *Queue) Error(message string) { q.push(LevelError, message) }

func (q *Queue) push(level Level, message string) {
	logger.Log.Debug("notification", "component", "notify", "level", level, "message", message)

	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == q.capacity {
		q.items = q.items[1:]
	}
	q.items = append(q.items, Notification{Level: level, Message: message, At: time.Now()})
}

// Drain returns pending notifications oldest first and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Len reports how many notifications are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
