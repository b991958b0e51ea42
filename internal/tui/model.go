package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coolguy173/focus-app1/internal/domain"
	"github.com/coolguy173/focus-app1/internal/theme"
	"github.com/coolguy173/focus-app1/internal/timer"
)

// reporter is the scoring operations the model needs. *scoring.Client
// implements it.
type reporter interface {
	ReportWin(ctx context.Context) (domain.Stats, error)
	ReportLoss(ctx context.Context) (domain.Stats, error)
	DispatchLoss(ctx context.Context)
	Stats(ctx context.Context) (domain.Stats, error)
}

type engineEventMsg timer.Event

type statsMsg struct {
	stats domain.Stats
	err   error
}

type reportDoneMsg struct {
	outcome domain.Outcome
	stats   domain.Stats
	err     error
}

// Model is the root Bubble Tea model for the battle screen.
type Model struct {
	engine  *timer.Engine
	events  <-chan timer.Event
	themes  *theme.Controller
	scoring reporter

	session     timer.Session
	danger      bool
	stats       domain.Stats
	statsKnown  bool
	lastResult  string
	width       int
	confirmQuit bool
	quitting    bool
}

func NewModel(engine *timer.Engine, themes *theme.Controller, scoring reporter) *Model {
	return &Model{
		engine:  engine,
		events:  engine.Subscribe(64),
		themes:  themes,
		scoring: scoring,
		session: engine.Session(),
	}
}

// Init satisfies tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.fetchStats())
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return engineEventMsg(event)
	}
}

func (m *Model) fetchStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.scoring.Stats(context.Background())
		return statsMsg{stats: stats, err: err}
	}
}

func (m *Model) reportOutcome(outcome domain.Outcome) tea.Cmd {
	return func() tea.Msg {
		var (
			stats domain.Stats
			err   error
		)
		if outcome == domain.OutcomeWin {
			stats, err = m.scoring.ReportWin(context.Background())
		} else {
			stats, err = m.scoring.ReportLoss(context.Background())
		}
		return reportDoneMsg{outcome: outcome, stats: stats, err: err}
	}
}

// Update handles key presses, engine events, and scoring responses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(typed)

	case engineEventMsg:
		return m.handleEngineEvent(timer.Event(typed))

	case statsMsg:
		if typed.err == nil {
			m.stats = typed.stats
			m.statsKnown = true
		}
		return m, nil

	case reportDoneMsg:
		if typed.err == nil {
			m.stats = typed.stats
			m.statsKnown = true
		}
		// A failed report is dropped on the floor. The battle result on
		// screen stands either way.
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		// Quitting mid-battle forfeits it, so the first press only warns.
		// The engine is asked directly; the model's snapshot may lag a tick.
		if m.engine.Session().State == timer.StateRunning && !m.confirmQuit {
			m.confirmQuit = true
			return m, nil
		}
		return m.quit()

	case "ctrl+c":
		return m.quit()

	case "s":
		m.confirmQuit = false
		m.engine.Start()
		return m, nil

	case "a":
		m.confirmQuit = false
		m.engine.Abandon()
		return m, nil

	case "r":
		m.confirmQuit = false
		if m.engine.Session().State == timer.StateDone {
			m.lastResult = ""
			m.engine.Reset()
		}
		return m, nil

	case "1", "2", "3", "4":
		m.confirmQuit = false
		idx := int(key.String()[0] - '1')
		if idx < len(theme.All) {
			m.themes.Apply(theme.All[idx])
		}
		return m, nil
	}

	m.confirmQuit = false
	return m, nil
}

// quit claims the outcome of a running battle as a loss and fires the
// dispatch that must never block shutdown for long.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.engine.Interrupt() {
		m.scoring.DispatchLoss(context.Background())
	}
	return m, tea.Quit
}

func (m *Model) handleEngineEvent(event timer.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitForEvent()}

	switch event.Type {
	case timer.EventTick:
		m.session.State = event.State
		m.session.SecondsRemaining = event.SecondsRemaining
		m.danger = event.Danger

	case timer.EventStateChange:
		m.session.State = event.State
		m.session.SecondsRemaining = event.SecondsRemaining
		if event.State != timer.StateRunning {
			m.danger = false
		}

	case timer.EventOutcome:
		if event.Outcome == domain.OutcomeWin {
			m.lastResult = "Battle won! +1 to your streak."
		} else {
			m.lastResult = "Battle lost. The streak is gone."
		}
		cmds = append(cmds, m.reportOutcome(event.Outcome))
	}

	return m, tea.Batch(cmds...)
}

// View renders the battle screen with the active theme's palette.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	palette := paletteFor(m.themes.Current())
	styles := newStyleSet(palette)

	title := styles.title.Render("FOCUS BATTLE")

	clockStyle := styles.clock
	if m.danger {
		clockStyle = styles.clockDanger
	}
	clock := clockStyle.Render(timer.FormatClock(m.session.SecondsRemaining))

	bar := renderProgressBar(timer.Percent(m.session.SecondsRemaining), 30, palette, m.danger)

	var status string
	switch m.session.State {
	case timer.StateIdle:
		status = styles.status.Render("Press s to start a 25 minute battle")
	case timer.StateRunning:
		status = styles.status.Render("Stay focused. Press a to abandon")
	case timer.StateDone:
		status = styles.status.Render("Press r to battle again")
	}

	stats := ""
	if m.statsKnown {
		stats = styles.stats.Render(
			fmt.Sprintf("Wins %d   Losses %d   Streak %d", m.stats.Wins, m.stats.Losses, m.stats.Streak),
		)
	}

	sections := []string{title, "", clock, bar, "", status}
	if m.confirmQuit {
		sections = append(sections, "", styles.clockDanger.Render("Quitting forfeits this battle. Press q again to leave."))
	}
	if m.lastResult != "" {
		sections = append(sections, "", styles.result.Render(m.lastResult))
	}
	if stats != "" {
		sections = append(sections, "", stats)
	}
	sections = append(sections, "", m.renderThemePills(styles), styles.help.Render("s start · a abandon · r again · 1-4 theme · q quit"))

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.frame.Render(body) + "\n"
}

func (m *Model) renderThemePills(styles styleSet) string {
	current := m.themes.Current()
	pills := make([]string, 0, len(theme.All))
	for i, t := range theme.All {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == current {
			pills = append(pills, styles.pillActive.Render(label))
		} else {
			pills = append(pills, styles.pill.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pills...)
}
