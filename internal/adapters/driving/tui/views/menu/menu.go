// Package menu provides the task selection view for the TUI.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// Title is the heading shown above the task list.
const Title = "Select an OCR Processing Option"

// Item represents a single menu option.
type Item struct {
	Label string
	Task  domain.Task
}

// View lets the user pick one workflow task.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	items    []Item
	selected int
	chosen   domain.Task
	done     bool
	width    int
}

var _ tea.Model = (*View)(nil)

// NewView creates a menu listing every task followed by a Cancel entry.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	items := make([]Item, 0, len(domain.AllTasks())+1)
	for _, task := range domain.AllTasks() {
		items = append(items, Item{Label: task.Label(), Task: task})
	}
	items = append(items, Item{Label: "Cancel", Task: domain.TaskNone})

	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		items:  items,
		width:  80,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Up):
			if v.selected > 0 {
				v.selected--
			}
		case key.Matches(msg, v.keys.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case key.Matches(msg, v.keys.Select):
			v.chosen = v.items[v.selected].Task
			v.done = true
			return v, tea.Quit
		case key.Matches(msg, v.keys.Quit), key.Matches(msg, v.keys.Cancel):
			v.chosen = domain.TaskNone
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

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(Title))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keys.MenuHelp())))
	return b.String()
}

// Chosen returns the selected task, or domain.TaskNone when cancelled.
func (v *View) Chosen() domain.Task {
	return v.chosen
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}
