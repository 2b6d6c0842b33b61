package game

import (
	"github.com/jwebster45206/ecoquest/pkg/notify"
	"github.com/jwebster45206/ecoquest/pkg/quiz"
	"github.com/jwebster45206/ecoquest/pkg/stats"
)

// QuizView is the renderable state of an open quiz.
type QuizView struct {
	Question quiz.Question `json:"question"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Score    int           `json:"score"`
	Pending  bool          `json:"pending"`
}

// Snapshot is a read-only copy of the game state for rendering.
type Snapshot struct {
	Points        int                   `json:"points"`
	Level         int                   `json:"level"`
	Progress      int                   `json:"progress"`
	Completed     []MissionID           `json:"completed"`
	Quiz          *QuizView             `json:"quiz,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
	Stats         stats.Counters        `json:"stats"`
	Section       Section               `json:"section"`
}

// IsCompleted reports whether m is in the snapshot's completed set.
func (s Snapshot) IsCompleted(m MissionID) bool {
	for _, c := range s.Completed {
		if c == m {
			return true
		}
	}
	return false
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Points:        g.points,
		Level:         g.level,
		Progress:      g.progress,
		Completed:     g.CompletedMissions(),
		Notifications: g.notes.List(),
		Stats:         g.animator.Current(),
		Section:       g.section,
	}
	if q, ok := g.session.Current(); ok {
		snap.Quiz = &QuizView{
			Question: q,
			Index:    g.session.Index(),
			Total:    g.session.Total(),
			Score:    g.session.Score(),
			Pending:  g.session.Pending(),
		}
	}
	return snap
}

// Points returns the player's points.
func (g *Game) Points() int { return g.points }

// Level returns the player's level.
func (g *Game) Level() int { return g.level }

// Progress returns mission progress in [0, 100].
func (g *Game) Progress() int { return g.progress }

// Section returns the active navigation marker.
func (g *Game) Section() Section { return g.section }

// Completed reports whether mission m has been completed.
func (g *Game) Completed(m MissionID) bool { return g.completed[m] }

// CompletedMissions returns completed missions in display order.
func (g *Game) CompletedMissions() []MissionID {
	out := make([]MissionID, 0, len(g.completed))
	for _, m := range Missions {
		if g.completed[m] {
			out = append(out, m)
		}
	}
	return out
}

// QuizActive reports whether the quiz is open.
func (g *Game) QuizActive() bool { return g.session.Active() }

// QuizScore returns the running quiz score.
func (g *Game) QuizScore() int { return g.session.Score() }

// Stats returns the displayed environmental counters.
func (g *Game) Stats() stats.Counters { return g.animator.Current() }

// StatsDone reports whether the stats animation has finished.
func (g *Game) StatsDone() bool { return g.animator.Done() }

// Notifications returns the visible notifications, oldest first.
func (g *Game) Notifications() []notify.Notification { return g.notes.List() }
