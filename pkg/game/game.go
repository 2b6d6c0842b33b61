package game

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jwebster45206/ecoquest/pkg/notify"
	"github.com/jwebster45206/ecoquest/pkg/quiz"
	"github.com/jwebster45206/ecoquest/pkg/schedule"
	"github.com/jwebster45206/ecoquest/pkg/stats"
)

// Options configures a new Game.
type Options struct {
	// Start is the mount time. Defaults to time.Now().
	Start time.Time
	// Bank is the quiz question bank. Defaults to quiz.DefaultBank().
	Bank *quiz.Bank
	// RepeatMissionRewards pays reforestation and recycling points on every
	// click, not only the click that completes the mission.
	RepeatMissionRewards bool
	Logger               *slog.Logger
}

// Game owns all app state. Every method must be called from a single
// dispatch loop; Game is not safe for concurrent use.
type Game struct {
	sched     *schedule.Scheduler
	notes     *notify.Queue
	animator  *stats.Animator
	session   *quiz.Session
	quizTask  schedule.TaskID
	listeners []Listener
	log       *slog.Logger

	repeatRewards bool

	points    int
	level     int
	progress  int
	completed map[MissionID]bool
	section   Section
}

// New mounts a game and starts the stats animation.
func New(opts Options) *Game {
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	if opts.Bank == nil {
		opts.Bank = quiz.DefaultBank()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sched := schedule.New(opts.Start)
	g := &Game{
		sched:         sched,
		notes:         notify.NewQueue(sched),
		animator:      stats.NewAnimator(sched, stats.Targets),
		session:       quiz.NewSession(opts.Bank),
		log:           opts.Logger.With("component", "game"),
		repeatRewards: opts.RepeatMissionRewards,
		points:        InitialPoints,
		level:         InitialLevel,
		progress:      InitialProgress,
		completed:     make(map[MissionID]bool),
		section:       SectionHome,
	}
	g.notes.OnPush(func(n notify.Notification) {
		g.emit(Event{Type: EventNotification, Notification: &n})
	})
	g.animator.OnTick(func(stats.Counters) {
		g.emit(Event{Type: EventStatsTick})
	})
	g.animator.Start()
	return g
}

// Subscribe registers a listener for state changes.
func (g *Game) Subscribe(l Listener) {
	if l != nil {
		g.listeners = append(g.listeners, l)
	}
}

func (g *Game) emit(e Event) {
	e.At = g.sched.Now()
	e.Points = g.points
	e.Level = g.level
	for _, l := range g.listeners {
		l(e)
	}
}

func (g *Game) award(delta int, mission MissionID) {
	if delta <= 0 {
		return
	}
	g.points += delta
	g.emit(Event{Type: EventPointsAwarded, Delta: delta, Mission: mission})
}

func (g *Game) complete(m MissionID) bool {
	if g.completed[m] {
		return false
	}
	g.completed[m] = true
	g.log.Info("Mission completed", "mission", m)
	g.emit(Event{Type: EventMissionCompleted, Mission: m})
	return true
}

// Advance runs every timer due at or before now. Returns the number of
// timers fired.
func (g *Game) Advance(now time.Time) int {
	return g.sched.Advance(now)
}

// Now returns the game clock.
func (g *Game) Now() time.Time {
	return g.sched.Now()
}

// PendingTimers returns the number of scheduled timers.
func (g *Game) PendingTimers() int {
	return g.sched.Len()
}

// Teardown cancels every timer. The game ignores time after teardown.
func (g *Game) Teardown() {
	if g.sched.Stopped() {
		return
	}
	g.animator.Stop()
	g.sched.Teardown()
	g.quizTask = 0
	g.log.Debug("Game torn down")
}

// StartMission pays the mission bonus now and advances progress after
// MissionProgressDelay. A level-up is granted when progress was already at
// LevelUpThreshold or above at the time of the call.
func (g *Game) StartMission() {
	g.award(StartMissionBonus, "")
	g.notes.Push(fmt.Sprintf("🌟 Mission started! +%d points earned!", StartMissionBonus), notify.SeveritySuccess)

	levelUp := g.progress >= LevelUpThreshold
	g.log.Debug("Mission started", "progress", g.progress, "level_up", levelUp)

	g.sched.After(MissionProgressDelay, func(time.Time) {
		g.progress = min(g.progress+ProgressStep, MaxProgress)
		g.emit(Event{Type: EventProgressUpdated})
		if levelUp {
			g.level++
			g.log.Info("Level up", "level", g.level)
			g.emit(Event{Type: EventLevelUp})
			g.notes.Push(fmt.Sprintf("🎉 Level up! Welcome to Level %d", g.level), notify.SeveritySuccess)
		}
	})
}

// OpenReforestation triggers the reforestation mission.
func (g *Game) OpenReforestation() {
	g.simpleMission(MissionReforestation, ReforestationBonus,
		fmt.Sprintf("🌳 Reforestation mission started! +%d points", ReforestationBonus),
		"🌳 Reforestation mission already completed")
}

// OpenRecycling triggers the recycling mission.
func (g *Game) OpenRecycling() {
	g.simpleMission(MissionRecycling, RecyclingBonus,
		fmt.Sprintf("♻️ Recycling challenge accepted! +%d points", RecyclingBonus),
		"♻️ Recycling challenge already completed")
}

func (g *Game) simpleMission(m MissionID, bonus int, awardedMsg, repeatMsg string) {
	if g.completed[m] && !g.repeatRewards {
		g.notes.Push(repeatMsg, notify.SeveritySuccess)
		return
	}
	g.award(bonus, m)
	g.notes.Push(awardedMsg, notify.SeveritySuccess)
	g.complete(m)
}

// OpenQuiz starts the quiz from the first question. Reopening an active quiz
// restarts it and drops any pending transition.
func (g *Game) OpenQuiz() {
	g.cancelQuizTask()
	g.session.Open()
	g.emit(Event{Type: EventQuizOpened})
}

// AnswerQuiz answers the current question with option. Correct answers pay
// their points immediately; the move to the next question, or the end of the
// quiz, happens QuizFeedbackDelay later. Returns false when the answer was
// ignored: quiz closed, feedback still showing, or option out of range.
func (g *Game) AnswerQuiz(option int) bool {
	out, ok := g.session.Answer(option)
	if !ok {
		return false
	}

	g.emit(Event{Type: EventQuizAnswered, Correct: out.Correct, Score: g.session.Score()})
	if out.Correct {
		g.award(out.Points, MissionQuiz)
		g.notes.Push(fmt.Sprintf("✅ Correct! +%d points", out.Points), notify.SeveritySuccess)
	} else {
		g.notes.Push("❌ Incorrect answer. Try again!", notify.SeverityError)
	}

	g.quizTask = g.sched.After(QuizFeedbackDelay, func(time.Time) {
		g.quizTask = 0
		switch g.session.Advance() {
		case quiz.StepNext:
			g.emit(Event{Type: EventQuizAdvanced, Score: g.session.Score()})
		case quiz.StepComplete:
			score := g.session.Score()
			g.log.Info("Quiz completed", "score", score)
			g.emit(Event{Type: EventQuizCompleted, Score: score})
			g.notes.Push(fmt.Sprintf("🏆 Quiz completed! Total score: %d points", score), notify.SeveritySuccess)
			g.complete(MissionQuiz)
		}
	})
	return true
}

// DismissQuiz closes the quiz without completing it. The running score is
// discarded; points already paid for correct answers are kept.
func (g *Game) DismissQuiz() {
	if !g.session.Active() {
		return
	}
	g.cancelQuizTask()
	g.session.Dismiss()
	g.emit(Event{Type: EventQuizDismissed})
}

func (g *Game) cancelQuizTask() {
	if g.quizTask != 0 {
		g.sched.Cancel(g.quizTask)
		g.quizTask = 0
	}
}

// SelectSection moves the navigation marker.
func (g *Game) SelectSection(s Section) {
	if sectionIndex(s) < 0 || s == g.section {
		return
	}
	g.section = s
	g.emit(Event{Type: EventSectionSelected, Section: s})
}

// NextSection moves the navigation marker right, wrapping around.
func (g *Game) NextSection() {
	i := sectionIndex(g.section)
	g.SelectSection(Sections[(i+1)%len(Sections)])
}

// PrevSection moves the navigation marker left, wrapping around.
func (g *Game) PrevSection() {
	i := sectionIndex(g.section)
	g.SelectSection(Sections[(i-1+len(Sections))%len(Sections)])
}

// RegisterNow is a call-to-action placeholder.
func (g *Game) RegisterNow() {
	g.log.Debug("Register clicked")
}

// LearnMore is a call-to-action placeholder.
func (g *Game) LearnMore() {
	g.log.Debug("Learn more clicked")
}

// Notify pushes a notification from outside the game, such as an
// infrastructure error.
func (g *Game) Notify(message string, severity notify.Severity) notify.Notification {
	return g.notes.Push(message, severity)
}

// DismissNotification removes a notification before it expires.
func (g *Game) DismissNotification(id string) bool {
	return g.notes.Dismiss(id)
}
