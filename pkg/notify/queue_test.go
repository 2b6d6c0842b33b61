package notify

import (
	"testing"
	"time"

	"github.com/jwebster45206/ecoquest/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestQueue_PushDefaultsToSuccess(t *testing.T) {
	q := NewQueue(schedule.New(epoch))
	n := q.Push("hello", "")

	assert.Equal(t, SeveritySuccess, n.Severity)
	assert.Equal(t, epoch, n.CreatedAt)
	assert.Equal(t, []Notification{n}, q.List())
}

func TestQueue_ExpiresAfterLifetime(t *testing.T) {
	sched := schedule.New(epoch)
	q := NewQueue(sched)
	q.Push("toast", SeveritySuccess)

	sched.Advance(epoch.Add(2999 * time.Millisecond))
	assert.Equal(t, 1, q.Len(), "still visible at 2999ms")

	sched.Advance(epoch.Add(3001 * time.Millisecond))
	assert.Equal(t, 0, q.Len(), "gone at 3001ms")
}

func TestQueue_KeepsInsertionOrder(t *testing.T) {
	sched := schedule.New(epoch)
	q := NewQueue(sched)

	q.Push("first", SeveritySuccess)
	sched.Advance(epoch.Add(10 * time.Millisecond))
	q.Push("second", SeverityError)
	q.Push("second", SeverityError)

	var msgs []string
	for _, n := range q.List() {
		msgs = append(msgs, n.Message)
	}
	assert.Equal(t, []string{"first", "second", "second"}, msgs, "duplicates are not coalesced")

	sched.Advance(epoch.Add(3005 * time.Millisecond))
	require.Equal(t, 2, q.Len())
	assert.Equal(t, "second", q.List()[0].Message)
}

func TestQueue_SameMillisecondIDsAreUnique(t *testing.T) {
	q := NewQueue(schedule.New(epoch))
	a := q.Push("a", "")
	b := q.Push("b", "")
	c := q.Push("c", "")

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, b.ID, c.ID)

	assert.True(t, q.Remove(b.ID))
	assert.Equal(t, []string{a.ID, c.ID}, []string{q.List()[0].ID, q.List()[1].ID})
}

func TestQueue_RemoveIsIdempotent(t *testing.T) {
	sched := schedule.New(epoch)
	q := NewQueue(sched)
	n := q.Push("bye", "")

	assert.True(t, q.Dismiss(n.ID))
	assert.False(t, q.Remove(n.ID))
	assert.Equal(t, 0, sched.Len(), "dismiss cancels the expiry timer")

	// expiry of an already-removed id must not disturb later entries
	other := q.Push("stay", "")
	assert.False(t, q.Remove("missing"))
	assert.Equal(t, []Notification{other}, q.List())
}

func TestQueue_OnPushHook(t *testing.T) {
	q := NewQueue(schedule.New(epoch))
	var seen []string
	q.OnPush(func(n Notification) { seen = append(seen, n.Message) })

	q.Push("one", "")
	q.Push("two", SeverityError)
	assert.Equal(t, []string{"one", "two"}, seen)
}

func TestQueue_ListIsACopy(t *testing.T) {
	q := NewQueue(schedule.New(epoch))
	q.Push("x", "")
	list := q.List()
	list[0].Message = "mutated"
	assert.Equal(t, "x", q.List()[0].Message)
}
