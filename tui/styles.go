package tui

import "github.com/charmbracelet/lipgloss"

// Bar and text colors.
var (
	Settled   = lipgloss.Color("#22c55e") // green
	Comparing = lipgloss.Color("#ef4444") // red
	Pending   = lipgloss.Color("#3b82f6") // blue
	Muted     = lipgloss.Color("#6b7280")
	Border    = lipgloss.Color("#d1d5db")
)

// Styles holds the lipgloss styles of the interface.
type Styles struct {
	Title     lipgloss.Style
	Stats     lipgloss.Style
	Help      lipgloss.Style
	Panel     lipgloss.Style
	Complete  lipgloss.Style
	Error     lipgloss.Style
	Settled   lipgloss.Style
	Comparing lipgloss.Style
	Pending   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true),
		Stats:     lipgloss.NewStyle().Foreground(Muted),
		Help:      lipgloss.NewStyle().Foreground(Muted),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1),
		Complete:  lipgloss.NewStyle().Foreground(Settled).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(Comparing),
		Settled:   lipgloss.NewStyle().Foreground(Settled),
		Comparing: lipgloss.NewStyle().Foreground(Comparing),
		Pending:   lipgloss.NewStyle().Foreground(Pending),
	}
}
