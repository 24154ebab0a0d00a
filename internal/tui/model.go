package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benedictjohannes/mpd-config-switcher/internal/session"
)

// Engine is the part of *session.Engine the screen drives
type Engine interface {
	SwitchTo(target session.ConfigTarget)
	Snapshot() session.State
	Updates() <-chan session.State
	Close()
}

// Messages from the engine
type snapshotMsg struct {
	state session.State
}

type engineClosedMsg struct{}

// waitForSnapshot blocks until the engine publishes a new State. The model
// re-arms it after every delivery.
func waitForSnapshot(updates <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return engineClosedMsg{}
		}
		return snapshotMsg{state: s}
	}
}

// Model is the single switcher screen. Everything it shows is derived
// from the latest session.View.
type Model struct {
	engine Engine
	server string

	view   session.View
	cursor int
	placed bool // cursor has been moved onto the active target once

	Spinner spinner.Model
	Help    help.Model
	Keys    keyMap

	Width    int
	Height   int
	quitting bool
}

// New creates the screen for an already started engine
func New(engine Engine, server string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := Model{
		engine:  engine,
		server:  server,
		Spinner: s,
		Help:    help.New(),
		Keys:    newKeyMap(),
	}
	m.apply(session.Project(engine.Snapshot()))
	return m
}

// Init starts listening for snapshots
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.engine.Updates()), m.Spinner.Tick)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width - 6
		return m, nil

	case snapshotMsg:
		m.apply(session.Project(msg.state))
		return m, waitForSnapshot(m.engine.Updates())

	case engineClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.quitting = true
		m.engine.Close()
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.Keys.Down):
		if m.cursor < len(m.view.Buttons)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.Keys.Switch):
		if b, ok := m.selected(); ok && !b.Disabled {
			m.engine.SwitchTo(b.Target)
		}

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	}

	return m, nil
}

// apply installs a new view, keeping the cursor in range
func (m *Model) apply(v session.View) {
	m.view = v

	if !m.placed && v.Affordance == session.AffordanceList {
		for i, b := range v.Buttons {
			if b.Active {
				m.cursor = i
				m.placed = true
				break
			}
		}
	}

	if m.cursor >= len(v.Buttons) {
		m.cursor = len(v.Buttons) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (session.Button, bool) {
	if m.view.Affordance != session.AffordanceList || m.cursor >= len(m.view.Buttons) {
		return session.Button{}, false
	}
	return m.view.Buttons[m.cursor], true
}

// View renders the screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(LabelStyle.Render("Current mode: "))
	b.WriteString(CurrentModeStyle.Render(m.view.CurrentName))
	b.WriteString("\n\n")

	if m.view.Affordance == session.AffordanceList {
		b.WriteString(m.renderButtons())
	} else {
		b.WriteString(SubtitleStyle.Render(m.view.Notice))
	}
	b.WriteString("\n")

	if status := m.renderStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
		b.WriteString("\n")
	}

	return RenderApplicationContainer(
		b.String(),
		BuildHeaderContent(m.server),
		m.Help.View(m.Keys),
		m.Width,
		m.Height,
	)
}

func (m Model) renderButtons() string {
	lines := make([]string, 0, len(m.view.Buttons))
	for i, btn := range m.view.Buttons {
		var line string
		switch {
		case i == m.cursor && !btn.Disabled:
			line = SelectedButtonStyle.Render("→ " + btn.Label)
		case btn.Disabled:
			line = DisabledButtonStyle.Render(btn.Label)
		default:
			line = ButtonStyle.Render(btn.Label)
		}
		if btn.Active {
			line += " " + ActiveBadgeStyle.Render("✓ current")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderStatus() string {
	switch {
	case m.view.Busy:
		return StatusBusyStyle.Render(fmt.Sprintf("%s %s", m.Spinner.View(), m.view.Status))
	case m.view.Status == "":
		return ""
	case m.view.Failure:
		return StatusErrorStyle.Render("✗ " + m.view.Status)
	default:
		return StatusStyle.Render("✓ " + m.view.Status)
	}
}

// CurrentView exposes the projection the screen is showing
func (m Model) CurrentView() session.View {
	return m.view
}

// Cursor returns the index of the highlighted button
func (m Model) Cursor() int {
	return m.cursor
}

// Run shows the screen until the user quits, then closes the engine
func Run(engine Engine, server string) error {
	program := tea.NewProgram(New(engine, server), tea.WithAltScreen())
	_, err := program.Run()
	engine.Close()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
