package notify

import (
	"fmt"
	"time"

	"github.com/jwebster45206/ecoquest/pkg/schedule"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3000 * time.Millisecond

// Severity controls how a notification is styled.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue holds notifications in insertion order and expires each one
// Lifetime after it was pushed.
type Queue struct {
	sched  *schedule.Scheduler
	items  []Notification
	expiry map[string]schedule.TaskID
	lastMs int64
	sameMs int
	onPush func(Notification)
}

// NewQueue creates a queue whose expiry timers run on sched.
func NewQueue(sched *schedule.Scheduler) *Queue {
	return &Queue{
		sched:  sched,
		expiry: make(map[string]schedule.TaskID),
	}
}

// OnPush registers a hook called after every push.
func (q *Queue) OnPush(fn func(Notification)) {
	q.onPush = fn
}

// Push appends a notification and schedules its removal.
// An empty severity defaults to success.
func (q *Queue) Push(message string, severity Severity) Notification {
	if severity == "" {
		severity = SeveritySuccess
	}
	now := q.sched.Now()
	n := Notification{
		ID:        q.nextID(now),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
	}
	q.items = append(q.items, n)

	id := n.ID
	if task := q.sched.After(Lifetime, func(time.Time) { q.Remove(id) }); task != 0 {
		q.expiry[id] = task
	}
	if q.onPush != nil {
		q.onPush(n)
	}
	return n
}

// Remove deletes the notification with id. Removing an absent id is a no-op.
// Reports whether anything was removed.
func (q *Queue) Remove(id string) bool {
	delete(q.expiry, id)
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Dismiss removes a notification before it expires and cancels its timer.
func (q *Queue) Dismiss(id string) bool {
	if task, ok := q.expiry[id]; ok {
		q.sched.Cancel(task)
	}
	return q.Remove(id)
}

// List returns a copy of the visible notifications, oldest first.
func (q *Queue) List() []Notification {
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of visible notifications.
func (q *Queue) Len() int {
	return len(q.items)
}

// nextID derives an id from the creation timestamp. Pushes landing in the
// same millisecond get a numeric suffix so ids stay unique.
func (q *Queue) nextID(now time.Time) string {
	ms := now.UnixMilli()
	if ms == q.lastMs {
		q.sameMs++
		return fmt.Sprintf("%d-%d", ms, q.sameMs)
	}
	q.lastMs = ms
	q.sameMs = 0
	return fmt.Sprintf("%d", ms)
}
