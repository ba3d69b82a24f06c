// Package secret is a masked single line prompt for API keys.
package secret

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	textInput textinput.Model
	title     string
	cancelled bool
}

func New(title, placeholder string) Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "🔑 "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	ti.EchoCharacter = '*'
	ti.EchoMode = textinput.EchoPassword

	return Model{textInput: ti, title: title}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return fmt.Sprintf(
		"%s\n%s\n\nPress Enter when done, Esc to quit.\n",
		m.title,
		m.textInput.View(),
	)
}

func (m Model) Cancelled() bool { return m.cancelled }

// Value is the entered secret without surrounding quotes or blanks.
func (m Model) Value() string {
	return strings.Trim(strings.TrimSpace(m.textInput.Value()), `"'`)
}
