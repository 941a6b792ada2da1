// Package dialog provides a modal message view for the TUI.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/styles"
)

// View displays a title and message lines until dismissed.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	title  string
	lines  []string
	done   bool
}

var _ tea.Model = (*View)(nil)

// NewView creates a dialog.
func NewView(s *styles.Styles, title string, lines []string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		title:  title,
		lines:  lines,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, v.keys.Select, v.keys.Cancel, v.keys.Quit) {
			v.done = true
			return v, tea.Quit
		}
	}
	return v, nil
}

// View implements tea.Model.
func (v *View) View() string {
	if v.done {
		return ""
	}

	var body strings.Builder
	body.WriteString(v.styles.Title.Render(v.title))
	body.WriteString("\n")
	for _, line := range v.lines {
		body.WriteString("\n")
		if strings.HasPrefix(line, "Failed") {
			body.WriteString(v.styles.Error.Render(line))
		} else {
			body.WriteString(v.styles.Normal.Render(line))
		}
	}

	return v.styles.Dialog.Render(body.String()) + "\n" +
		v.styles.Help.Render("[enter] ok")
}

// Dismissed reports whether the user closed the dialog.
func (v *View) Dismissed() bool {
	return v.done
}
