package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"Empty input returns default", "", 3, 0, 0},
		{"Valid choice within range", "2", 3, 0, 2},
		{"Choice below minimum returns default", "0", 3, 1, 1},
		{"Choice above maximum returns default", "4", 3, 0, 0},
		{"Invalid input returns default", "abc", 3, 2, 2},
		{"Maximum value is valid", "3", 3, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestLinePrompter_ChooseTask(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Task
	}{
		{"1\n", domain.TaskClassify},
		{"2\n", domain.TaskExport},
		{"3\n", domain.TaskImport},
		{"\n", domain.TaskNone},
		{"9\n", domain.TaskNone},
		{"", domain.TaskNone},
	}
	for _, tt := range tests {
		out := new(bytes.Buffer)
		p := newLinePrompter(strings.NewReader(tt.input), out)

		task, err := p.ChooseTask(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tt.want, task, "input %q", tt.input)
		assert.Contains(t, out.String(), "1. Identify Documents for OCR")
		assert.Contains(t, out.String(), "3. Import OCR'd Documents")
	}
}

func TestLinePrompter_ChooseDirectory(t *testing.T) {
	out := new(bytes.Buffer)
	p := newLinePrompter(strings.NewReader("  /ocr/out  \n"), out)

	dir, err := p.ChooseDirectory(context.Background(), "Select Export Directory")
	require.NoError(t, err)
	assert.Equal(t, "/ocr/out", dir)
	assert.Equal(t, "Select Export Directory: ", out.String())
}

func TestLinePrompter_RunWithProgress(t *testing.T) {
	out := new(bytes.Buffer)
	p := newLinePrompter(strings.NewReader(""), out)

	err := p.RunWithProgress(context.Background(), "Export for OCR", func(_ context.Context, progress domain.ProgressFunc) error {
		progress("Exporting 1/2", 1, 2)
		progress("Exporting 2/2", 2, 2)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Export for OCR\n\rExporting 1/2\rExporting 2/2\n", out.String())
}

func TestLinePrompter_ShowMessage(t *testing.T) {
	out := new(bytes.Buffer)
	p := newLinePrompter(strings.NewReader(""), out)

	require.NoError(t, p.ShowMessage(context.Background(), "Done", []string{"Exported: 3"}))
	assert.Equal(t, "Done\n====\nExported: 3\n", out.String())
}
