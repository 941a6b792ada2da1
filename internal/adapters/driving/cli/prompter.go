package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// Work is a long-running step executed under a progress display.
type Work = func(ctx context.Context, progress domain.ProgressFunc) error

// Prompter runs the interactive steps of the run command.
// Every call blocks until the user has finished with it.
type Prompter interface {
	// ChooseTask asks which workflow task to run. Returns domain.TaskNone when cancelled.
	ChooseTask(ctx context.Context) (domain.Task, error)

	// ChooseDirectory asks for a directory. Returns "" when cancelled.
	ChooseDirectory(ctx context.Context, title string) (string, error)

	// RunWithProgress runs work while displaying its progress.
	RunWithProgress(ctx context.Context, title string, work Work) error

	// ShowMessage displays lines and waits for acknowledgement.
	ShowMessage(ctx context.Context, title string, lines []string) error
}

// linePrompter is the Prompter used when no terminal UI is available.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) ChooseTask(_ context.Context) (domain.Task, error) {
	tasks := domain.AllTasks()
	fmt.Fprintln(p.out, "Select an OCR Processing Option")
	for i, task := range tasks {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, task.Label())
	}
	fmt.Fprint(p.out, "\nEnter choice (blank to cancel): ")

	choice := parseChoice(readLine(p.in), len(tasks), 0)
	if choice == 0 {
		return domain.TaskNone, nil
	}
	return tasks[choice-1], nil
}

func (p *linePrompter) ChooseDirectory(_ context.Context, title string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", title)
	return readLine(p.in), nil
}

func (p *linePrompter) RunWithProgress(ctx context.Context, title string, work Work) error {
	fmt.Fprintln(p.out, title)
	return work(ctx, func(message string, current, total int) {
		if current == total || current%progressEvery == 0 || total < progressEvery {
			fmt.Fprintf(p.out, "\r%s", message)
		}
		if current == total {
			fmt.Fprintln(p.out)
		}
	})
}

func (p *linePrompter) ShowMessage(_ context.Context, title string, lines []string) error {
	fmt.Fprintln(p.out, title)
	fmt.Fprintln(p.out, strings.Repeat("=", len(title)))
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
