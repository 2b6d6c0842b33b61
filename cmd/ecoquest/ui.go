package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jwebster45206/ecoquest/internal/config"
	"github.com/jwebster45206/ecoquest/internal/leaderboard"
	"github.com/jwebster45206/ecoquest/pkg/game"
	"github.com/jwebster45206/ecoquest/pkg/notify"
	"github.com/jwebster45206/ecoquest/pkg/stats"
	"github.com/jwebster45206/ecoquest/pkg/textfilter"
)

const (
	frameInterval   = stats.Interval
	leaderboardSize = 5
	toastWidth      = 36

	defaultPlayerName = "eco-warrior"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config      *config.Config
	game        *game.Game
	store       leaderboard.Store
	broadcaster *leaderboard.Broadcaster
	sessionID   uuid.UUID
	player      string
	log         *slog.Logger

	keys     keyMap
	help     help.Model
	progress progress.Model
	printer  *message.Printer

	// events collects game events between frames; the game calls the
	// subscriber synchronously from Update.
	events *eventBuffer

	width         int
	height        int
	standings     []leaderboard.Entry
	showQuitModal bool
	warnedStore   bool
	quitting      bool

	now       func() time.Time
	writeClip func(string) error
}

type eventBuffer struct {
	events []game.Event
}

func (b *eventBuffer) drain() []game.Event {
	out := b.events
	b.events = nil
	return out
}

type frameMsg time.Time

type standingRecordedMsg struct {
	err error
}

type standingsLoadedMsg struct {
	entries []leaderboard.Entry
	err     error
}

type activityPublishedMsg struct {
	err error
}

type clipboardMsg struct {
	err error
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("27")) // blue

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")) // green

	navStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("250"))

	navActiveStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("28"))

	pointsStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("202")) // orange

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			Width(26).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	statValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // yellow
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	successToastStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("34"))

	errorToastStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("160"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

// NewConsoleUI wires a mounted game to the terminal. store and broadcaster
// may be in-memory or Redis-backed.
func NewConsoleUI(cfg *config.Config, g *game.Game, store leaderboard.Store, broadcaster *leaderboard.Broadcaster, log *slog.Logger) ConsoleUI {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30

	events := &eventBuffer{}
	g.Subscribe(func(e game.Event) {
		events.events = append(events.events, e)
	})

	sessionID := uuid.New()
	return ConsoleUI{
		config:      cfg,
		game:        g,
		store:       store,
		broadcaster: broadcaster,
		sessionID:   sessionID,
		player:      textfilter.NewNameFilter(defaultPlayerName).Clean(cfg.PlayerName),
		log:         log.With("component", "console", "session_id", sessionID.String()),
		keys:        newKeyMap(),
		help:        help.New(),
		progress:    bar,
		printer:     message.NewPrinter(language.English),
		events:      events,
		now:         time.Now,
		writeClip:   clipboard.WriteAll,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(frameTick(), m.recordStanding())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case frameMsg:
		m.game.Advance(time.Time(msg))
		cmds = append(cmds, frameTick())

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.showQuitModal = true
			return m, nil
		}
		if m.game.QuizActive() {
			m.handleQuizKey(msg)
		} else {
			if cmd := m.handleMainKey(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case standingRecordedMsg:
		if msg.err != nil {
			m.storeFailed(msg.err)
		} else if m.game.Section() == game.SectionLeaderboard {
			cmds = append(cmds, m.loadStandings())
		}

	case standingsLoadedMsg:
		if msg.err != nil {
			m.storeFailed(msg.err)
		} else {
			m.standings = msg.entries
		}

	case activityPublishedMsg:
		if msg.err != nil {
			m.log.Warn("Activity publish failed", "error", msg.err)
		}

	case clipboardMsg:
		if msg.err != nil {
			m.log.Warn("Clipboard write failed", "error", msg.err)
			m.game.Notify("📋 Could not copy score to clipboard", notify.SeverityError)
		} else {
			m.game.Notify("📋 Score copied to clipboard", notify.SeveritySuccess)
		}
	}

	cmds = append(cmds, m.flushEvents()...)
	return m, tea.Batch(cmds...)
}

func (m *ConsoleUI) handleQuizKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.game.DismissQuiz()
	case key.Matches(msg, m.keys.Answer):
		if option, ok := answerKeys[msg.String()]; ok {
			m.game.AnswerQuiz(option)
		}
	}
}

func (m *ConsoleUI) handleMainKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.StartMission):
		m.game.StartMission()
	case key.Matches(msg, m.keys.Quiz):
		m.game.OpenQuiz()
	case key.Matches(msg, m.keys.Reforestation):
		m.game.OpenReforestation()
	case key.Matches(msg, m.keys.Recycling):
		m.game.OpenRecycling()
	case key.Matches(msg, m.keys.NextSection):
		m.game.NextSection()
	case key.Matches(msg, m.keys.PrevSection):
		m.game.PrevSection()
	case key.Matches(msg, m.keys.Register):
		m.game.RegisterNow()
	case key.Matches(msg, m.keys.LearnMore):
		m.game.LearnMore()
	case key.Matches(msg, m.keys.Copy):
		return m.copySummary()
	}
	return nil
}

// flushEvents turns the events collected since the last update into
// leaderboard commands: one standing write per batch, one publish per
// broadcast-worthy event.
func (m *ConsoleUI) flushEvents() []tea.Cmd {
	var (
		cmds   []tea.Cmd
		record bool
	)
	for _, e := range m.events.drain() {
		switch e.Type {
		case game.EventSectionSelected:
			if e.Section == game.SectionLeaderboard {
				cmds = append(cmds, m.loadStandings())
			}
		case game.EventNotification:
			m.log.Debug("Notification", "message", e.Notification.Message, "severity", e.Notification.Severity)
		}
		if leaderboard.Broadcasts(e.Type) {
			record = true
			if m.broadcaster.Enabled() {
				cmds = append(cmds, m.publish(leaderboard.NewActivity(m.sessionID, m.player, e)))
			}
		}
	}
	if record {
		cmds = append(cmds, m.recordStanding())
	}
	return cmds
}

func (m *ConsoleUI) storeFailed(err error) {
	m.log.Error("Leaderboard request failed", "error", err)
	if !m.warnedStore {
		m.warnedStore = true
		m.game.Notify("⚠️ Leaderboard unavailable", notify.SeverityError)
	}
}

func (m ConsoleUI) entry() leaderboard.Entry {
	completed := m.game.CompletedMissions()
	names := make([]string, len(completed))
	for i, c := range completed {
		names[i] = string(c)
	}
	return leaderboard.Entry{
		SessionID: m.sessionID,
		Player:    m.player,
		Points:    m.game.Points(),
		Level:     m.game.Level(),
		Completed: names,
		UpdatedAt: m.now(),
	}
}

func (m ConsoleUI) recordStanding() tea.Cmd {
	e := m.entry()
	store, timeout := m.store, m.config.LeaderboardTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return standingRecordedMsg{err: store.Record(ctx, e)}
	}
}

func (m ConsoleUI) loadStandings() tea.Cmd {
	store, timeout := m.store, m.config.LeaderboardTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := store.Top(ctx, leaderboardSize)
		return standingsLoadedMsg{entries: entries, err: err}
	}
}

func (m ConsoleUI) publish(a leaderboard.Activity) tea.Cmd {
	b, timeout := m.broadcaster, m.config.LeaderboardTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return activityPublishedMsg{err: b.Publish(ctx, a)}
	}
}

func (m ConsoleUI) copySummary() tea.Cmd {
	summary := m.summary()
	write := m.writeClip
	return func() tea.Msg {
		return clipboardMsg{err: write(summary)}
	}
}

func (m ConsoleUI) summary() string {
	return m.printer.Sprintf("EcoQuest: Level %d, %d points, %d/%d missions completed",
		m.game.Level(), m.game.Points(), len(m.game.CompletedMissions()), len(game.Missions))
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case frameMsg:
		// timers keep running behind the modal
		m.game.Advance(time.Time(msg))
		cmds := append([]tea.Cmd{frameTick()}, m.flushEvents()...)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m.quit()
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y", "q":
				return m.quit()
			case "n", "N":
				m.showQuitModal = false
				return m, nil
			}
		}
	}

	return m, nil
}

// quit tears the game down so no timer fires after the program exits.
func (m ConsoleUI) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.game.Teardown()
	m.log.Info("Session ended", "points", m.game.Points(), "level", m.game.Level())
	return m, tea.Quit
}

func (m ConsoleUI) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "\n  Initializing..."
	}

	snap := m.game.Snapshot()

	var body string
	switch {
	case m.showQuitModal:
		body = m.renderQuitModal()
	case snap.Quiz != nil:
		body = m.renderQuizModal(snap)
	default:
		body = m.renderMain(snap)
	}

	toasts := m.renderToasts(snap.Notifications)
	if toasts == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", toasts)
}

func (m ConsoleUI) renderMain(snap game.Snapshot) string {
	sections := []string{
		m.renderHeader(snap),
		m.renderHero(snap),
		m.renderTiles(snap),
		m.renderStats(snap.Stats),
	}
	if snap.Section == game.SectionLeaderboard {
		sections = append(sections, m.renderLeaderboard())
	}
	sections = append(sections,
		m.renderCallToAction(),
		m.help.ShortHelpView(m.keys.mainHelp()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConsoleUI) renderHeader(snap game.Snapshot) string {
	logo := headerStyle.Render("🌍 EcoQuest") + "  " + taglineStyle.Render("Green Future Initiative")

	var nav []string
	for _, s := range game.Sections {
		if s == snap.Section {
			nav = append(nav, navActiveStyle.Render(s.Label()))
		} else {
			nav = append(nav, navStyle.Render(s.Label()))
		}
	}
	points := pointsStyle.Render("🏆 " + m.formatPoints(snap.Points))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, logo, "   ", points),
		strings.Join(nav, " "),
		"",
	)
}

func (m ConsoleUI) formatPoints(points int) string {
	return m.printer.Sprintf("%d Points", points)
}

func (m ConsoleUI) renderHero(snap game.Snapshot) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("ENVIRONMENTAL QUEST") + "\n\n")
	content.WriteString(fmt.Sprintf("LEVEL %d\n", snap.Level))
	content.WriteString(m.progress.ViewAs(float64(snap.Progress)/100) + fmt.Sprintf(" %d%%\n", snap.Progress))
	content.WriteString("⭐ Eco Warrior Status\n\n")
	content.WriteString(promptStyle.Render("[s] ▶ START MISSION"))
	return panelStyle.Render(content.String())
}

func (m ConsoleUI) renderTiles(snap game.Snapshot) string {
	quizBadge := "☆ ☆ ☆"
	if snap.IsCompleted(game.MissionQuiz) {
		quizBadge = completedStyle.Render("★ ★ ★")
	}

	tile := func(hotkey, title, desc, badge string) string {
		text := titleStyle.Render(fmt.Sprintf("[%s] %s", hotkey, title)) + "\n" +
			wordwrap.String(desc, 24)
		if badge != "" {
			text += "\n" + badge
		}
		return tileStyle.Render(text)
	}
	doneBadge := func(mission game.MissionID) string {
		if snap.IsCompleted(mission) {
			return completedStyle.Render("✓ Completed")
		}
		return ""
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("1", "ECO QUIZ", "Test your environmental knowledge with interactive quizzes", quizBadge),
		tile("2", "REFORESTATION", "Plant virtual trees and learn about forest conservation", doneBadge(game.MissionReforestation)),
		tile("3", "RECYCLING", "Master waste segregation and recycling techniques", doneBadge(game.MissionRecycling)),
	)
}

func (m ConsoleUI) renderStats(c stats.Counters) string {
	cell := func(value, label string) string {
		return lipgloss.NewStyle().Width(20).Align(lipgloss.Center).Render(
			statValueStyle.Render(value) + "\n" + label)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		cell(stats.FormatCount(c.TreesPlanted), "Trees Planted"),
		cell(stats.FormatCount(c.Participants), "Active Participants"),
		cell(stats.FormatVillages(c.VillagesCovered), "Villages Covered"),
		cell(stats.FormatPercent(c.WasteReduction), "Waste Reduction"),
	)
	return panelStyle.Render(titleStyle.Render("Our Environmental Progress") + "\n\n" + row)
}

func (m ConsoleUI) renderLeaderboard() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("Leaderboard") + "\n\n")
	if len(m.standings) == 0 {
		content.WriteString(promptStyle.Render("No standings yet"))
		return panelStyle.Render(content.String())
	}
	for i, e := range m.standings {
		marker := "  "
		if e.SessionID == m.sessionID {
			marker = "▶ "
		}
		content.WriteString(m.printer.Sprintf("%s%d. %-16s %8d pts  L%d\n", marker, i+1, textfilter.DisplayName(e.Player), e.Points, e.Level))
	}
	return panelStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func (m ConsoleUI) renderCallToAction() string {
	return promptStyle.Render("Ready to make a difference?  [r] Register Now  [l] Learn More")
}

func (m ConsoleUI) renderQuizModal(snap game.Snapshot) string {
	q := snap.Quiz

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Environmental Quiz"))
	content.WriteString("\n")
	content.WriteString(promptStyle.Render(fmt.Sprintf("Question %d of %d", q.Index+1, q.Total)))
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(q.Question.Text, 44))
	content.WriteString("\n\n")
	for i, option := range q.Question.Options {
		content.WriteString(modalItemStyle.Render(fmt.Sprintf("  [%c] %s", 'a'+i, option)))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("Current Score: %d points", q.Score))
	content.WriteString("\n\n")
	content.WriteString(m.help.ShortHelpView(m.keys.quizHelp()))

	modal := modalStyle.Width(50).Render(content.String())
	return m.place(modal)
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit EcoQuest?"))
	content.WriteString("\n\n")
	content.WriteString("Your points are not saved between sessions.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return m.place(modal)
}

// place centers a modal in the space left of the toast column.
func (m ConsoleUI) place(modal string) string {
	width := m.width - toastWidth - 4
	if width < lipgloss.Width(modal) {
		width = lipgloss.Width(modal)
	}
	return lipgloss.Place(width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderToasts(notes []notify.Notification) string {
	if len(notes) == 0 {
		return ""
	}
	toasts := make([]string, 0, len(notes))
	for _, n := range notes {
		style := successToastStyle
		if n.Severity == notify.SeverityError {
			style = errorToastStyle
		}
		toasts = append(toasts, style.Width(toastWidth).Render(wordwrap.String(n.Message, toastWidth-2)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, toasts...)
}

// frameTick drives the game clock at the stats animation rate.
func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
