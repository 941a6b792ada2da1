// Package tui provides the terminal user interface for the interactive
// run command. Each step runs as its own Bubble Tea program.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/views/dialog"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/views/dirpicker"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui/views/progress"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// Prompter drives the run command's interactive steps with Bubble Tea views.
type Prompter struct {
	styles *styles.Styles
	opts   []tea.ProgramOption
}

// NewPrompter creates a Prompter. The options are passed to every program,
// which lets callers redirect input and output.
func NewPrompter(opts ...tea.ProgramOption) *Prompter {
	return &Prompter{
		styles: styles.DefaultStyles(),
		opts:   opts,
	}
}

// ChooseTask shows the task menu.
func (p *Prompter) ChooseTask(ctx context.Context) (domain.Task, error) {
	view := menu.NewView(p.styles)
	if err := p.run(ctx, view); err != nil {
		return domain.TaskNone, err
	}
	return view.Chosen(), nil
}

// ChooseDirectory shows a directory prompt. Returns "" when cancelled.
func (p *Prompter) ChooseDirectory(ctx context.Context, title string) (string, error) {
	view := dirpicker.NewView(p.styles, title)
	if err := p.run(ctx, view); err != nil {
		return "", err
	}
	return view.Value(), nil
}

// RunWithProgress runs work in the background while the progress view
// renders its updates. Quitting the view cancels the work and waits for it.
func (p *Prompter) RunWithProgress(
	ctx context.Context,
	title string,
	work func(ctx context.Context, progress domain.ProgressFunc) error,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := progress.NewView(p.styles, title)
	prog := p.program(ctx, view)

	done := make(chan error, 1)
	go func() {
		err := work(ctx, func(message string, current, total int) {
			prog.Send(progress.UpdateMsg{Message: message, Current: current, Total: total})
		})
		done <- err
		prog.Send(progress.DoneMsg{Err: err})
	}()

	_, runErr := prog.Run()
	cancel()
	workErr := <-done

	if workErr != nil {
		return workErr
	}
	if runErr != nil && !isExit(runErr) {
		return fmt.Errorf("running progress view: %w", runErr)
	}
	return nil
}

// ShowMessage shows a dialog until dismissed.
func (p *Prompter) ShowMessage(ctx context.Context, title string, lines []string) error {
	return p.run(ctx, dialog.NewView(p.styles, title, lines))
}

func (p *Prompter) program(ctx context.Context, model tea.Model) *tea.Program {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.opts...)
	return tea.NewProgram(model, opts...)
}

func (p *Prompter) run(ctx context.Context, model tea.Model) error {
	_, err := p.program(ctx, model).Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if isExit(err) {
		return nil
	}
	return fmt.Errorf("running %T: %w", model, err)
}

// isExit reports whether err only signals that the program was stopped.
func isExit(err error) bool {
	return errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)
}
