// Package dirpicker provides a directory path prompt for the TUI.
package dirpicker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/styles"
)

// View asks the user to type a directory path.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	title  string
	input  textinput.Model
	value  string
	done   bool
}

var _ tea.Model = (*View)(nil)

// NewView creates a focused directory prompt.
func NewView(s *styles.Styles, title string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/directory"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		title:  title,
		input:  ti,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			v.input.Width = msg.Width - 10
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Select):
			v.value = strings.TrimSpace(v.input.Value())
			v.done = true
			return v, tea.Quit
		case key.Matches(msg, v.keys.Cancel):
			v.value = ""
			v.done = true
			return v, tea.Quit
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View implements tea.Model.
func (v *View) View() string {
	if v.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.InputHelp())))
	return b.String()
}

// Value returns the entered directory, or "" when cancelled.
func (v *View) Value() string {
	return v.value
}
