// Package tui provides the Bubble Tea task logging interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/didit/internal/model"
	"github.com/verte-zerg/didit/internal/tracker"
)

// Runner performs the pipeline actions behind the buttons.
type Runner interface {
	Log(ctx context.Context, tier string) (tracker.Result, error)
	Refresh(ctx context.Context) (tracker.Summary, error)
}

// NoticeMsg carries a pipeline notice into the UI.
type NoticeMsg tracker.Notice

type actionDoneMsg struct {
	logged  bool
	result  tracker.Result
	summary tracker.Summary
	err     error
}

// Notifier delivers tracker notices to a running program. It is safe to use
// from command goroutines.
type Notifier struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach binds the notifier to p. Notices sent before Attach are dropped.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

// Notify implements tracker.UserInteraction.
func (n *Notifier) Notify(notice tracker.Notice) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()
	if p != nil {
		p.Send(NoticeMsg(notice))
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	buttonStyle = lipgloss.NewStyle().
			Width(28).
			Align(lipgloss.Center).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Foreground(lipgloss.Color("#B0B0B0"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			Padding(1, 2)
	levelColors = map[tracker.Level]lipgloss.Color{
		tracker.LevelInfo:    lipgloss.Color("#C89A3A"),
		tracker.LevelWarning: lipgloss.Color("#FFC107"),
		tracker.LevelError:   lipgloss.Color("#FF4D4F"),
	}
)

// Model implements the Bubble Tea task logging UI.
type Model struct {
	runner Runner
	tiers  []model.Tier
	keys   keyMap
	help   help.Model
	spin   spinner.Model

	cursor     int
	busy       bool
	notices    []tracker.Notice
	status     string
	statusErr  bool
	todayTotal int
	hasTotal   bool

	width  int
	height int
}

// NewModel constructs the UI. The report is regenerated on Init.
func NewModel(runner Runner, tiers model.TierTable) *Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &Model{
		runner: runner,
		tiers:  tiers.All(),
		keys:   defaultKeyMap(),
		help:   help.New(),
		spin:   s,
		busy:   true,
		status: "Refreshing report...",
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refreshCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case NoticeMsg:
		m.notices = append(m.notices, tracker.Notice(msg))
		return m, nil
	case actionDoneMsg:
		m.finish(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if len(m.notices) > 0 {
		if key.Matches(msg, m.keys.Dismiss) {
			m.notices = m.notices[1:]
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Prev):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Next):
		m.move(1)
		return m, nil
	}
	if m.busy {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Trigger):
		return m, m.trigger(m.cursor)
	case key.Matches(msg, m.keys.Pick):
		idx := int(msg.Runes[0] - '1')
		if idx >= len(m.tiers) {
			return m, nil
		}
		m.cursor = idx
		return m, m.trigger(idx)
	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		m.status = "Refreshing report..."
		m.statusErr = false
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.tiers) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.tiers)) % len(m.tiers)
}

func (m *Model) trigger(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.tiers) {
		return nil
	}
	tier := m.tiers[idx]
	m.busy = true
	m.status = fmt.Sprintf("Logging %s task...", tier.Name)
	m.statusErr = false
	runner := m.runner
	return func() tea.Msg {
		res, err := runner.Log(context.Background(), tier.Name)
		return actionDoneMsg{logged: true, result: res, summary: res.Summary, err: err}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		summary, err := runner.Refresh(context.Background())
		return actionDoneMsg{summary: summary, err: err}
	}
}

func (m *Model) finish(msg actionDoneMsg) {
	m.busy = false
	if msg.summary.Today != "" {
		m.todayTotal = msg.summary.TodayTotal
		m.hasTotal = true
	}
	switch {
	case msg.err != nil && msg.logged && msg.result.Entry.Date == "":
		m.status = "Task not logged: " + msg.err.Error()
		m.statusErr = true
	case msg.err != nil:
		m.status = "Report not updated: " + msg.err.Error()
		m.statusErr = true
	case msg.logged:
		m.status = msg.result.Message
		m.statusErr = false
	default:
		m.status = "Report updated: " + msg.summary.ReportPath
		m.statusErr = false
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.notices) > 0 && m.width > 0 && m.height > 0 {
		return m.renderModal(m.notices[0])
	}
	body := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return body
	}
	footer := m.help.View(m.keys)
	footerHeight := lipgloss.Height(footer)
	bodyHeight := m.height - footerHeight
	if bodyHeight < 1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body) + "\n" +
		lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Bottom, footer)
}

func (m *Model) renderBody() string {
	lines := []string{
		titleStyle.Render("🎯 I Did It!"),
		headerStyle.Render("Select Task Difficulty"),
		"",
	}
	for i, tier := range m.tiers {
		lines = append(lines, m.renderButton(i, tier))
	}
	lines = append(lines, "")
	if m.hasTotal {
		lines = append(lines, headerStyle.Render(fmt.Sprintf("Today: %d points", m.todayTotal)))
	}
	status := m.status
	if m.busy {
		status = m.spin.View() + " " + status
	}
	if status != "" {
		if m.statusErr {
			lines = append(lines, errorStyle.Render(status))
		} else {
			lines = append(lines, statusStyle.Render(status))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderButton(i int, tier model.Tier) string {
	label := fmt.Sprintf("%d  %s %s  +%d", i+1, tier.Glyph, tier.Label(), tier.Score)
	style := buttonStyle
	if i == m.cursor {
		color := lipgloss.Color(tier.Color)
		if tier.Color == "" {
			color = lipgloss.Color("#C89A3A")
		}
		style = style.BorderForeground(color).Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	}
	return style.Render(label)
}

func (m *Model) renderModal(n tracker.Notice) string {
	color, ok := levelColors[n.Level]
	if !ok {
		color = levelColors[tracker.LevelInfo]
	}
	body := []string{
		titleStyle.Render(n.Title),
		"",
		n.Body,
		"",
		headerStyle.Render("Enter / Esc to close"),
	}
	if len(m.notices) > 1 {
		body = append(body, headerStyle.Render(fmt.Sprintf("%d more", len(m.notices)-1)))
	}
	box := modalStyle.BorderForeground(color).Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func modalWidth(width int) int {
	return maxInt(30, minInt(width-4, 72))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
