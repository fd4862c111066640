package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfalab/flowdyn/internal/config"
)

func press(m tea.Model, key string) tea.Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next
}

func TestBrowserNavigation(t *testing.T) {
	sys, err := config.Build(config.GetPreset("steel"), nil)
	require.NoError(t, err)
	st := sys.Stocks()["in_use"]
	st.Inflow().Fill(1)
	require.NoError(t, st.Compute())

	m := NewBrowser(sys, "t")
	view := m.View()
	assert.Contains(t, view, "steel")
	assert.Contains(t, view, "in_use")
	assert.Contains(t, view, "production => use")

	// stocks sort before flows, so the first entry is the stock
	detail, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, detail.View(), "inflow")

	back, _ := detail.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, back.View(), "enter view")

	moved := press(back, "j")
	detail2, _ := moved.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotEmpty(t, detail2.View())

	_, quit := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, quit)
}
