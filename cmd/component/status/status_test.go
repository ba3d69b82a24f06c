package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetPhase(t *testing.T) {
	m := New("Processing request...", []string{"one", "two"})
	assert.Equal(t, 0, m.Phase())

	m.SetPhase(5)
	assert.Equal(t, 2, m.Phase())
	m.SetPhase(-1)
	assert.Equal(t, 0, m.Phase())
}

func TestView(t *testing.T) {
	m := New("Processing request...", []string{"connect", "analyze"})
	m.SetPhase(1)
	v := m.View()
	assert.Contains(t, v, "Processing request...")
	assert.Contains(t, v, "connect")
	assert.Contains(t, v, "analyze")
	assert.NotContains(t, v, "Waiting for the AI")

	m.SetPhase(2)
	assert.Contains(t, m.View(), "Waiting for the AI")
}

func TestLine(t *testing.T) {
	phases := []string{"connect"}
	assert.Equal(t, "• connect", Line(phases, 0))
	assert.Empty(t, Line(phases, 1))
}
