package schedule

import (
	"container/heap"
	"time"
)

// TaskID identifies a scheduled task. The zero value is never issued.
type TaskID uint64

// Scheduler is a single-threaded timer list driven by explicit time.
// Callers advance it from one dispatch loop; it is not safe for concurrent use.
type Scheduler struct {
	now      time.Time
	seq      uint64
	queue    taskQueue
	byID     map[TaskID]*task
	stopped  bool
	inflight bool
}

type task struct {
	id    TaskID
	due   time.Time
	seq   uint64
	fn    func(now time.Time)
	index int
}

// New creates a scheduler whose clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{
		now:  start,
		byID: make(map[TaskID]*task),
	}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run d after the current time.
// Returns 0 if the scheduler has been torn down.
func (s *Scheduler) After(d time.Duration, fn func(now time.Time)) TaskID {
	if s.stopped || fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &task{
		id:  TaskID(s.seq),
		due: s.now.Add(d),
		seq: s.seq,
		fn:  fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending task. Reports whether the task was still pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.byID, id)
	return true
}

// Pending reports whether the task is still waiting to fire.
func (s *Scheduler) Pending(id TaskID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Advance moves the clock to now and runs every task due at or before it,
// in due order. Tasks scheduled while advancing run in the same call if they
// are already due. Time never moves backwards.
// Returns the number of tasks run.
func (s *Scheduler) Advance(now time.Time) int {
	if s.stopped || s.inflight {
		return 0
	}
	s.inflight = true
	defer func() { s.inflight = false }()

	ran := 0
	for len(s.queue) > 0 && !s.stopped {
		next := s.queue[0]
		if next.due.After(now) {
			break
		}
		heap.Pop(&s.queue)
		delete(s.byID, next.id)
		if next.due.After(s.now) {
			s.now = next.due
		}
		next.fn(s.now)
		ran++
	}
	if !s.stopped && now.After(s.now) {
		s.now = now
	}
	return ran
}

// Teardown cancels every pending task and rejects future scheduling.
func (s *Scheduler) Teardown() {
	s.stopped = true
	s.queue = nil
	s.byID = make(map[TaskID]*task)
}

// Stopped reports whether Teardown has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
