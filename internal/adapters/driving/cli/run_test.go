package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

// scriptedPrompter answers prompts from fixed values and records what it showed.
type scriptedPrompter struct {
	task      domain.Task
	dir       string
	taskErr   error
	progress  []string
	titles    []string
	// cancelAt cancels the work's context once this many progress reports arrived.
	cancelAt  int
	messages  [][]string
	dirTitles []string
}

func (p *scriptedPrompter) ChooseTask(_ context.Context) (domain.Task, error) {
	return p.task, p.taskErr
}

func (p *scriptedPrompter) ChooseDirectory(_ context.Context, title string) (string, error) {
	p.dirTitles = append(p.dirTitles, title)
	return p.dir, nil
}

func (p *scriptedPrompter) RunWithProgress(ctx context.Context, _ string, work Work) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return work(ctx, func(message string, _, _ int) {
		p.progress = append(p.progress, message)
		if len(p.progress) == p.cancelAt {
			cancel()
		}
	})
}

func (p *scriptedPrompter) ShowMessage(_ context.Context, title string, lines []string) error {
	p.titles = append(p.titles, title)
	p.messages = append(p.messages, lines)
	return nil
}

func (p *scriptedPrompter) lastMessage() []string {
	if len(p.messages) == 0 {
		return nil
	}
	return p.messages[len(p.messages)-1]
}

func usePrompter(t *testing.T, p Prompter) {
	t.Helper()
	old := prompter
	prompter = p
	t.Cleanup(func() { prompter = old })
}

func TestRunCmd_NoTaskChosen(t *testing.T) {
	setupServices(t)
	p := &scriptedPrompter{task: domain.TaskNone}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{msgNoTask}, p.lastMessage())
}

func TestRunCmd_ChooseTaskError(t *testing.T) {
	setupServices(t)
	usePrompter(t, &scriptedPrompter{taskErr: errors.New("tty gone")})

	_, err := executeCommand(t, "run")
	assert.EqualError(t, err, "tty gone")
}

func TestRunCmd_Classify(t *testing.T) {
	env := setupServices(t)
	env.seed(t, classifyFixture()...)
	p := &scriptedPrompter{task: domain.TaskClassify}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.NoError(t, err)
	assert.Contains(t, p.progress, "ID Must OCR Documents")
	assert.Contains(t, p.lastMessage(), "Identified: 1 Must OCR")
	assert.Equal(t, domain.TaskClassify.Label(), p.titles[0])
}

func TestRunCmd_Export(t *testing.T) {
	env := setupServices(t)
	exportFixture(t, env)
	dest := t.TempDir()
	p := &scriptedPrompter{task: domain.TaskExport, dir: dest}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{"Select Export Directory"}, p.dirTitles)
	assert.Equal(t, []string{"Exporting 1/2", "Exporting 2/2"}, p.progress)
	assert.Equal(t, "Exported 1 items from 2 selected items to "+dest, p.lastMessage()[0])
	assert.Contains(t, p.lastMessage(), "Exported: 1")
	assert.Contains(t, p.lastMessage(), "Duplicates Skipped: 1")
	assert.FileExists(t, filepath.Join(dest, digestA+".pdf"))
}

func TestRunCmd_ExportCancelledShowsPartialSummary(t *testing.T) {
	env := setupServices(t)
	exportFixture(t, env)
	dest := t.TempDir()
	p := &scriptedPrompter{task: domain.TaskExport, dir: dest, cancelAt: 1}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.ErrorIs(t, err, context.Canceled)

	msg := p.lastMessage()
	require.NotEmpty(t, msg)
	assert.Equal(t, "Exported 1 items from 2 selected items to "+dest, msg[0])
	assert.Contains(t, msg, "Exported: 1")
	assert.Contains(t, msg[len(msg)-1], "Failed: export failed")
	assert.FileExists(t, filepath.Join(dest, digestA+".pdf"))
	assert.True(t, env.item(t, "a1").HasTag(domain.TagExported.Name()))
}

func TestRunCmd_ExportNoSelection(t *testing.T) {
	setupServices(t)
	p := &scriptedPrompter{task: domain.TaskExport, dir: t.TempDir()}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{msgNoSelection}, p.lastMessage())
	assert.Empty(t, p.dirTitles, "no directory prompt without a selection")
}

func TestRunCmd_ExportNoDirectory(t *testing.T) {
	env := setupServices(t)
	exportFixture(t, env)
	p := &scriptedPrompter{task: domain.TaskExport}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{msgNoDirectory}, p.lastMessage())
	assert.Empty(t, p.progress)
}

func TestRunCmd_Import(t *testing.T) {
	env := setupServices(t)
	root := importFixture(t, env)
	p := &scriptedPrompter{task: domain.TaskImport, dir: root}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.NoError(t, err)
	assert.Equal(t, []string{"Select OCR Output Directory"}, p.dirTitles)
	assert.Contains(t, p.progress, "Importing "+digestA+".pdf")
	msg := p.lastMessage()
	require.NotEmpty(t, msg)
	assert.Equal(t, msgReopen, msg[len(msg)-1])
	assert.Contains(t, msg, "PDF Files Imported: 1")
	assert.Contains(t, msg, "Text Files Imported: 1")
	assert.Equal(t, "ocr text", env.item(t, "a1").Text)
}

func TestRunCmd_ImportFailureIsShown(t *testing.T) {
	setupServices(t)
	p := &scriptedPrompter{task: domain.TaskImport, dir: filepath.Join(t.TempDir(), "missing")}
	usePrompter(t, p)

	_, err := executeCommand(t, "run")
	require.Error(t, err)
	require.Len(t, p.lastMessage(), 1)
	assert.Contains(t, p.lastMessage()[0], "Failed: import failed")
}

func TestRunCmd_LinePrompterFallback(t *testing.T) {
	setupServices(t)
	usePrompter(t, nil)

	out, err := executeCommandWithInput(t, "\n", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "Select an OCR Processing Option")
	assert.Contains(t, out, msgNoTask)
}
