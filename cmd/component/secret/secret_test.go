package secret

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestSecretInput(t *testing.T) {
	m := New("Paste your API key:", "sk-...")
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(` "sk-123" `)})
	assert.Equal(t, "sk-123", m.Value())
	assert.NotContains(t, m.View(), "sk-123")
	assert.False(t, m.Cancelled())

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Cancelled())
}
