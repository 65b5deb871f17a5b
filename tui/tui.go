/*
Package tui renders a battle in the terminal: two panels side by side,
one bar per element, with the current comparison in red and settled
elements in green.

The model polls the snapshots of both runs on a fixed frame interval,
so rendering never slows down the runs themselves.
*/
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/exascience/sortbattle/battle"
	"github.com/exascience/sortbattle/trace"
)

const (
	frameInterval = time.Second / 30
	speedStep     = 5
	bar           = "█"
	minBarRows    = 4
)

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model is the bubbletea model of a battle.
type Model struct {
	ctx    context.Context
	battle *battle.Battle
	styles Styles
	width  int
	height int
	left   trace.Snapshot
	right  trace.Snapshot
	err    error
}

// New creates a model for b. Runs started from the model end when ctx
// ends.
func New(ctx context.Context, b *battle.Battle) Model {
	m := Model{
		ctx:    ctx,
		battle: b,
		styles: DefaultStyles(),
		width:  120,
		height: 30,
	}
	m.left, m.right = b.Snapshots()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frame()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case frameMsg:
		m.left, m.right = m.battle.Snapshots()
		return m, frame()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.battle.Close()
			return m, tea.Quit
		case "s", "enter":
			m.battle.Start(m.ctx)
		case "p", " ":
			if m.battle.Active() {
				m.battle.TogglePause()
			}
		case "r":
			m.err = m.battle.Reset()
		case "m":
			m.battle.SetSound(!m.battle.Sound())
		case "+", "=":
			m.battle.SetSpeed(m.battle.Speed() + speedStep)
		case "-", "_":
			m.battle.SetSpeed(m.battle.Speed() - speedStep)
		}
		m.left, m.right = m.battle.Snapshots()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	panelWidth := max(m.width/2-4, 10)
	rows := max(m.height-10, minBarRows)
	l := m.panel(m.battle.Driver(battle.Left).Algorithm().String(), m.left, panelWidth, rows)
	r := m.panel(m.battle.Driver(battle.Right).Algorithm().String(), m.right, panelWidth, rows)

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Sorting Algorithms Battle"))
	sb.WriteString("\n")
	sb.WriteString(m.status())
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, l, r))
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Help.Render("s start  p pause  r reset  m sound  +/- delay  q quit"))
	return sb.String()
}

func (m Model) status() string {
	state := "ready"
	switch {
	case m.left.Complete && m.right.Complete:
		state = "done"
	case m.battle.Active() && m.battle.Paused():
		state = "paused"
	case m.battle.Active():
		state = "sorting"
	}
	sound := "off"
	if m.battle.Sound() {
		sound = "on"
	}
	return m.styles.Stats.Render(fmt.Sprintf("%s | delay %dms | sound %s | %d elements",
		state, m.battle.Speed(), sound, len(m.left.Values)))
}

func (m Model) panel(title string, s trace.Snapshot, width, rows int) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Stats.Render(fmt.Sprintf("Comparisons: %d  Swaps: %d  Time: %.2fs",
		s.Comparisons, s.Swaps, s.ElapsedSeconds())))
	sb.WriteString("\n")
	sb.WriteString(renderBars(s, width, rows, m.styles))
	sb.WriteString("\n")
	if s.Complete {
		sb.WriteString(m.styles.Complete.Render("Sorting Complete!"))
	}
	return m.styles.Panel.Width(width).Render(sb.String())
}

// renderBars draws one column per element, scaled so that the largest
// value fills all rows.
func renderBars(s trace.Snapshot, width, rows int, st Styles) string {
	n := len(s.Values)
	if n == 0 {
		return strings.Repeat("\n", rows-1)
	}
	top := 1
	for _, v := range s.Values {
		top = max(top, v)
	}
	cell := max(1, min(3, width/n))
	lines := make([]string, rows)
	for row := rows; row >= 1; row-- {
		var line strings.Builder
		for i, v := range s.Values {
			if v*rows < row*top {
				line.WriteString(strings.Repeat(" ", cell))
				continue
			}
			style := st.Pending
			switch {
			case s.IsSettled(i):
				style = st.Settled
			case s.IsComparing(i):
				style = st.Comparing
			}
			line.WriteString(style.Render(strings.Repeat(bar, cell)))
		}
		lines[rows-row] = line.String()
	}
	return strings.Join(lines, "\n")
}

// Run shows b in the terminal until the user quits or ctx ends.
func Run(ctx context.Context, b *battle.Battle) error {
	p := tea.NewProgram(New(ctx, b), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
