package game

import (
	"time"

	"github.com/jwebster45206/ecoquest/pkg/notify"
)

// EventType identifies a state change announced to subscribers.
type EventType string

const (
	EventPointsAwarded    EventType = "points.awarded"
	EventProgressUpdated  EventType = "progress.updated"
	EventLevelUp          EventType = "level.up"
	EventMissionCompleted EventType = "mission.completed"
	EventQuizOpened       EventType = "quiz.opened"
	EventQuizAnswered     EventType = "quiz.answered"
	EventQuizAdvanced     EventType = "quiz.advanced"
	EventQuizCompleted    EventType = "quiz.completed"
	EventQuizDismissed    EventType = "quiz.dismissed"
	EventNotification     EventType = "notification"
	EventStatsTick        EventType = "stats.tick"
	EventSectionSelected  EventType = "section.selected"
)

// Event describes one state mutation. Only the fields relevant to Type are set.
// Delta is the points change of EventPointsAwarded; Score is the quiz score of
// quiz events.
type Event struct {
	Type         EventType            `json:"type"`
	At           time.Time            `json:"at"`
	Mission      MissionID            `json:"mission,omitempty"`
	Delta        int                  `json:"delta,omitempty"`
	Points       int                  `json:"points"`
	Level        int                  `json:"level"`
	Score        int                  `json:"score,omitempty"`
	Correct      bool                 `json:"correct,omitempty"`
	Section      Section              `json:"section,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

// Listener receives events synchronously, on the goroutine that mutated the state.
type Listener func(Event)
