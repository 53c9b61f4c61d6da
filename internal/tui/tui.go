// Package tui renders the session transcript and table state in the
// terminal. The model is display-only: every line it shows arrives as a
// message from the session goroutine, and every command the user types
// goes back out through a callback. The model itself never touches the
// session.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// maxTranscript caps the retained transcript so long sessions don't
// grow without bound.
const maxTranscript = 2000

// LineMsg appends one transcript line.
type LineMsg string

// SidebarMsg replaces the table debug sidebar.
type SidebarMsg []string

// StateMsg updates the session state shown in the header.
type StateMsg string

// TurnMsg announces that it is the avatar's turn to act.
type TurnMsg string

// QuitMsg asks the model to shut down.
type QuitMsg struct{}

// Model is the Bubble Tea model for the client.
type Model struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	cmdInput    textinput.Model

	// Display state
	transcript []string
	sidebar    []string
	state      string
	turnInfo   string

	// onCommand ships a typed command line back to the session
	// goroutine.
	onCommand func(cmd string)

	width       int
	height      int
	initialized bool
	quitting    bool
}

// NewModel creates the model. onCommand is invoked for every line the
// user submits and must not block.
func NewModel(logger *log.Logger, onCommand func(cmd string)) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "login | join [id] | seat | bi | call | raise <amt> | fold | ..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		cmdInput:    ti,
		state:       "login",
		onCommand:   onCommand,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LineMsg:
		m.appendLine(string(msg))
		m.logViewport.GotoBottom()

	case SidebarMsg:
		m.sidebar = msg

	case StateMsg:
		m.state = string(msg)
		m.turnInfo = ""

	case TurnMsg:
		m.turnInfo = string(msg)
		m.appendLine(TurnStyle.Render("your turn: " + string(msg)))
		m.logViewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.onCommand("quit")
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			line := strings.TrimSpace(m.cmdInput.Value())
			m.cmdInput.SetValue("")
			if line != "" {
				m.turnInfo = ""
				m.onCommand(line)
			}
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.cmdInput, cmd = m.cmdInput.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) appendLine(line string) {
	m.transcript = append(m.transcript, m.styleLine(line))
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
}

// styleLine colors a transcript line by its prefix: inbound packets
// plain, outbound packets green, command errors red.
func (m *Model) styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "< "):
		return OutboundStyle.Render(line)
	case strings.HasPrefix(line, " EEE"):
		return ErrorStyle.Render(line)
	case strings.HasPrefix(line, ">>> "):
		return InfoStyle.Render(line)
	default:
		return line
	}
}

// View renders the transcript pane, the table sidebar and the command
// input.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(" pokercli ") + " " + InfoStyle.Render("state: "+m.state)
	if m.turnInfo != "" {
		header += "  " + TurnStyle.Render("YOUR TURN")
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1))
	inputPane := inputStyle.Render(m.cmdInput.View())
	inputHeight := lipgloss.Height(inputPane)

	sidebarWidth := 40
	if sidebarWidth > m.width/2 {
		sidebarWidth = m.width / 2
	}
	paneHeight := max(m.height-inputHeight-lipgloss.Height(header)-2, 1)

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(sidebarWidth, 1)).
		Height(paneHeight)
	sidebarPane := sidebarStyle.Render(strings.Join(m.sidebar, "\n"))

	logWidth := max(m.width-sidebarWidth-6, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.transcript, "\n"))
	if !m.initialized {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, header, topRow, inputPane)
}
