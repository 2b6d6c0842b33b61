package game

import "time"

// MissionID names a completable mission.
type MissionID string

const (
	MissionQuiz          MissionID = "quiz"
	MissionReforestation MissionID = "reforestation"
	MissionRecycling     MissionID = "recycling"
)

// Missions lists every mission in display order.
var Missions = []MissionID{MissionQuiz, MissionReforestation, MissionRecycling}

// Valid reports whether m is a known mission.
func (m MissionID) Valid() bool {
	switch m {
	case MissionQuiz, MissionReforestation, MissionRecycling:
		return true
	}
	return false
}

const (
	InitialPoints   = 2570
	InitialLevel    = 3
	InitialProgress = 75

	StartMissionBonus  = 50
	ReforestationBonus = 25
	RecyclingBonus     = 30

	ProgressStep     = 10
	MaxProgress      = 100
	LevelUpThreshold = 90

	MissionProgressDelay = 1000 * time.Millisecond
	QuizFeedbackDelay    = 1500 * time.Millisecond
)

// Section is the active navigation marker. It has no routing behavior.
type Section string

const (
	SectionHome        Section = "home"
	SectionMissions    Section = "missions"
	SectionInitiatives Section = "initiatives"
	SectionLeaderboard Section = "leaderboard"
	SectionAbout       Section = "about"
	SectionContact     Section = "contact"
)

// Sections lists the navigation items in order.
var Sections = []Section{
	SectionHome,
	SectionMissions,
	SectionInitiatives,
	SectionLeaderboard,
	SectionAbout,
	SectionContact,
}

// Label returns the navigation label.
func (s Section) Label() string {
	switch s {
	case SectionHome:
		return "Home"
	case SectionMissions:
		return "Missions"
	case SectionInitiatives:
		return "Initiatives"
	case SectionLeaderboard:
		return "Leaderboard"
	case SectionAbout:
		return "About"
	case SectionContact:
		return "Contact"
	}
	return string(s)
}

func sectionIndex(s Section) int {
	for i, v := range Sections {
		if v == s {
			return i
		}
	}
	return -1
}
