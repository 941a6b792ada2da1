// Package progress provides the progress view shown while an engine runs.
package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/styles"
)

// UpdateMsg reports engine progress. Total is zero when unknown.
type UpdateMsg struct {
	Message string
	Current int
	Total   int
}

// DoneMsg signals that the work finished. The view quits on receipt.
type DoneMsg struct {
	Err error
}

// View shows a spinner with the latest progress message.
type View struct {
	styles    *styles.Styles
	keys      *keymap.KeyMap
	title     string
	spinner   spinner.Model
	message   string
	current   int
	total     int
	err       error
	done      bool
	cancelled bool
}

var _ tea.Model = (*View)(nil)

// NewView creates a progress view with the given title.
func NewView(s *styles.Styles, title string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &View{
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		title:   title,
		spinner: sp,
		message: "Starting...",
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update implements tea.Model.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		v.message = msg.Message
		v.current = msg.Current
		v.total = msg.Total
		return v, nil

	case DoneMsg:
		v.err = msg.Err
		v.done = true
		return v, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Cancel) {
			v.cancelled = true
			return v, tea.Quit
		}
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

// View implements tea.Model.
func (v *View) View() string {
	if v.done || v.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n\n")
	b.WriteString(v.spinner.View())
	b.WriteString(" ")
	b.WriteString(v.styles.Normal.Render(v.message))
	if count := v.counter(); count != "" {
		b.WriteString("  ")
		b.WriteString(v.styles.Muted.Render(count))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render(keymap.HelpLine([]key.Binding{v.keys.Cancel})))
	return b.String()
}

func (v *View) counter() string {
	switch {
	case v.total > 0:
		return fmt.Sprintf("%d/%d (%d%%)", v.current, v.total, v.current*100/v.total)
	case v.current > 0:
		return fmt.Sprintf("%d", v.current)
	default:
		return ""
	}
}

// Err returns the error carried by DoneMsg.
func (v *View) Err() error {
	return v.err
}

// Cancelled reports whether the user quit before the work finished.
func (v *View) Cancelled() bool {
	return v.cancelled
}
