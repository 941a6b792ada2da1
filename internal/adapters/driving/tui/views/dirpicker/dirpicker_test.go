package dirpicker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(v *View, s string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewView(t *testing.T) {
	view := NewView(nil, "Select Export Directory")

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.True(t, view.input.Focused())
	assert.NotNil(t, view.Init())
}

func TestView_Enter(t *testing.T) {
	view := NewView(nil, "Select Export Directory")
	typeText(view, "  /tmp/ocr-out ")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "/tmp/ocr-out", view.Value())
	assert.Empty(t, view.View())
}

func TestView_Cancel(t *testing.T) {
	view := NewView(nil, "Select OCR Output Directory")
	typeText(view, "/tmp/ocr-out")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Empty(t, view.Value())
}

func TestView_EnterEmpty(t *testing.T) {
	view := NewView(nil, "Select Export Directory")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Empty(t, view.Value())
}

func TestView_Render(t *testing.T) {
	view := NewView(nil, "Select Export Directory")
	view.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	typeText(view, "/data")

	out := view.View()

	assert.Contains(t, out, "Select Export Directory")
	assert.Contains(t, out, "/data")
	assert.Contains(t, out, "[esc] cancel")
	assert.Equal(t, 90, view.input.Width)
}
