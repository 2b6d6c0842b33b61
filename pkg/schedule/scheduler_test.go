package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestScheduler_RunsInDueOrder(t *testing.T) {
	s := New(epoch)
	var got []string

	s.After(300*time.Millisecond, func(time.Time) { got = append(got, "c") })
	s.After(100*time.Millisecond, func(time.Time) { got = append(got, "a") })
	s.After(200*time.Millisecond, func(time.Time) { got = append(got, "b") })

	assert.Equal(t, 0, s.Advance(epoch.Add(99*time.Millisecond)))
	assert.Empty(t, got)

	assert.Equal(t, 3, s.Advance(epoch.Add(time.Second)))
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_TiesKeepInsertionOrder(t *testing.T) {
	s := New(epoch)
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		s.After(time.Second, func(time.Time) { got = append(got, i) })
	}
	s.Advance(epoch.Add(time.Second))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestScheduler_NestedTasksUseFiringTime(t *testing.T) {
	s := New(epoch)
	var fired []time.Duration

	var tick func(now time.Time)
	tick = func(now time.Time) {
		fired = append(fired, now.Sub(epoch))
		if len(fired) < 3 {
			s.After(40*time.Millisecond, tick)
		}
	}
	s.After(500*time.Millisecond, tick)

	s.Advance(epoch.Add(time.Second))
	assert.Equal(t, []time.Duration{
		500 * time.Millisecond,
		540 * time.Millisecond,
		580 * time.Millisecond,
	}, fired)
	assert.Equal(t, epoch.Add(time.Second), s.Now())
}

func TestScheduler_Cancel(t *testing.T) {
	s := New(epoch)
	fired := false
	id := s.After(time.Second, func(time.Time) { fired = true })

	require.True(t, s.Pending(id))
	assert.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id), "second cancel is a no-op")
	assert.False(t, s.Pending(id))

	s.Advance(epoch.Add(2 * time.Second))
	assert.False(t, fired)
}

func TestScheduler_CancelUnknownID(t *testing.T) {
	s := New(epoch)
	assert.False(t, s.Cancel(0))
	assert.False(t, s.Cancel(42))
}

func TestScheduler_Teardown(t *testing.T) {
	s := New(epoch)
	fired := 0
	s.After(time.Second, func(time.Time) { fired++ })
	s.After(2*time.Second, func(time.Time) { fired++ })

	s.Teardown()
	assert.True(t, s.Stopped())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, TaskID(0), s.After(time.Second, func(time.Time) { fired++ }))

	assert.Equal(t, 0, s.Advance(epoch.Add(time.Minute)))
	assert.Equal(t, 0, fired)
}

func TestScheduler_TeardownFromTask(t *testing.T) {
	s := New(epoch)
	fired := 0
	s.After(time.Second, func(time.Time) {
		fired++
		s.Teardown()
	})
	s.After(time.Second, func(time.Time) { fired++ })

	s.Advance(epoch.Add(time.Minute))
	assert.Equal(t, 1, fired)
}

func TestScheduler_ClockDoesNotRewind(t *testing.T) {
	s := New(epoch)
	s.Advance(epoch.Add(time.Second))
	s.Advance(epoch)
	assert.Equal(t, epoch.Add(time.Second), s.Now())
}

func TestScheduler_NilFuncIgnored(t *testing.T) {
	s := New(epoch)
	assert.Equal(t, TaskID(0), s.After(time.Second, nil))
	assert.Equal(t, 0, s.Len())
}
