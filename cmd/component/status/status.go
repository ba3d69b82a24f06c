// Package status shows the cosmetic progress phases of a request.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/getsavvyinc/webtoapk/theme"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).MarginBottom(1)
	doneStyle    = lipgloss.NewStyle().Foreground(theme.Muted).Strikethrough(true)
	currentStyle = lipgloss.NewStyle().Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	checkStyle   = lipgloss.NewStyle().Foreground(theme.Success)
)

type Model struct {
	spinner spinner.Model
	title   string
	phases  []string
	current int
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)))
}

// New creates a status list for phases. The first phase is current.
func New(title string, phases []string) Model {
	return Model{
		spinner: newSpinner(),
		title:   title,
		phases:  phases,
	}
}

// SetPhase marks every phase before i as done. i == len(phases) means all
// phases are done.
func (m *Model) SetPhase(i int) {
	m.current = min(max(i, 0), len(m.phases))
}

func (m Model) Phase() int { return m.current }

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n")
	}
	for i, phase := range m.phases {
		switch {
		case i < m.current:
			b.WriteString(checkStyle.Render("✓") + " " + doneStyle.Render(phase))
		case i == m.current:
			b.WriteString(m.spinner.View() + currentStyle.Render(phase))
		default:
			b.WriteString(pendingStyle.Render("• " + phase))
		}
		b.WriteString("\n")
	}
	if m.current >= len(m.phases) {
		b.WriteString(m.spinner.View() + currentStyle.Render("Waiting for the AI..."))
		b.WriteString("\n")
	}
	return b.String()
}

// Line is the plain text form of phase i, used when there is no TUI.
func Line(phases []string, i int) string {
	if i < 0 || i >= len(phases) {
		return ""
	}
	return "• " + phases[i]
}
