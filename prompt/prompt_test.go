package prompt

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeRunes(t *testing.T, m model, input string) model {
	t.Helper()
	for _, r := range input {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func TestModelCollectsInput(t *testing.T) {
	m := typeRunes(t, newModel("Username:", false), "alice")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)

	require.NotNil(t, cmd, "enter must quit the program")
	assert.True(t, m.done)
	assert.False(t, m.aborted)
	assert.Equal(t, "alice", m.input.Value())
}

func TestModelAbort(t *testing.T) {
	m := typeRunes(t, newModel("Token:", false), "partial")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(model)

	require.NotNil(t, cmd)
	assert.True(t, m.aborted)
}

func TestHiddenModeMasksEcho(t *testing.T) {
	m := newModel("Password:", true)
	assert.Equal(t, textinput.EchoPassword, m.input.EchoMode)

	m = newModel("Username:", false)
	assert.Equal(t, textinput.EchoNormal, m.input.EchoMode)
}

func TestOrigin(t *testing.T) {
	assert.Equal(t, "prompt", New("Name:", false).Origin())
}
