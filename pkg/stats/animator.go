package stats

import (
	"time"

	"github.com/jwebster45206/ecoquest/pkg/schedule"
)

const (
	StartDelay = 500 * time.Millisecond
	Duration   = 2000 * time.Millisecond
	Steps      = 50
	Interval   = Duration / Steps
)

// Counters are the four environmental figures shown on the stats panel.
type Counters struct {
	TreesPlanted    int `json:"trees_planted" yaml:"trees_planted"`
	Participants    int `json:"participants" yaml:"participants"`
	VillagesCovered int `json:"villages_covered" yaml:"villages_covered"`
	WasteReduction  int `json:"waste_reduction" yaml:"waste_reduction"`
}

// Targets are the values the animation settles on.
var Targets = Counters{
	TreesPlanted:    2500000,
	Participants:    75000,
	VillagesCovered: 250,
	WasteReduction:  35,
}

// Scale returns each target scaled by step/steps, rounded down.
func (c Counters) Scale(step, steps int) Counters {
	if steps <= 0 || step >= steps {
		return c
	}
	if step <= 0 {
		return Counters{}
	}
	scale := func(v int) int { return int(int64(v) * int64(step) / int64(steps)) }
	return Counters{
		TreesPlanted:    scale(c.TreesPlanted),
		Participants:    scale(c.Participants),
		VillagesCovered: scale(c.VillagesCovered),
		WasteReduction:  scale(c.WasteReduction),
	}
}

// Animator ramps the counters from zero to Targets once.
type Animator struct {
	sched   *schedule.Scheduler
	target  Counters
	current Counters
	step    int
	task    schedule.TaskID
	started bool
	done    bool
	onTick  func(Counters)
}

// NewAnimator creates an animator towards target. It does nothing until Start.
func NewAnimator(sched *schedule.Scheduler, target Counters) *Animator {
	return &Animator{sched: sched, target: target}
}

// OnTick registers a hook called after every counter update.
func (a *Animator) OnTick(fn func(Counters)) {
	a.onTick = fn
}

// Start arms the animation. Calls after the first are ignored.
func (a *Animator) Start() {
	if a.started {
		return
	}
	a.started = true
	// ticks run at StartDelay + k*Interval for k in 1..Steps
	a.task = a.sched.After(StartDelay, func(time.Time) {
		a.task = a.sched.After(Interval, a.tick)
	})
}

func (a *Animator) tick(time.Time) {
	a.step++
	if a.step >= Steps {
		a.current = a.target
		a.done = true
		a.task = 0
	} else {
		a.current = a.target.Scale(a.step, Steps)
		a.task = a.sched.After(Interval, a.tick)
	}
	if a.onTick != nil {
		a.onTick(a.current)
	}
}

// Stop cancels any pending tick. Used on teardown.
func (a *Animator) Stop() {
	if a.task != 0 {
		a.sched.Cancel(a.task)
		a.task = 0
	}
}

// Current returns the displayed counters.
func (a *Animator) Current() Counters {
	return a.current
}

// Step returns the number of ticks applied so far.
func (a *Animator) Step() int {
	return a.step
}

// Done reports whether the counters have reached their targets.
func (a *Animator) Done() bool {
	return a.done
}
