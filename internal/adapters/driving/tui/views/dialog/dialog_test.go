package dialog

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView(t *testing.T) {
	view := NewView(nil, "Export for OCR", []string{"Exported: 2"})

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.Init())
	assert.False(t, view.Dismissed())
}

func TestView_Render(t *testing.T) {
	view := NewView(nil, "Export for OCR", []string{"Exported: 2", "Failed: 1"})

	out := view.View()

	assert.Contains(t, out, "Export for OCR")
	assert.Contains(t, out, "Exported: 2")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "[enter] ok")
}

func TestView_DismissKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil, "t", nil)

			_, cmd := view.Update(tt.msg)

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, view.Dismissed())
			assert.Empty(t, view.View())
		})
	}
}

func TestView_OtherKeysIgnored(t *testing.T) {
	view := NewView(nil, "t", nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Nil(t, cmd)
	assert.False(t, view.Dismissed())
}
