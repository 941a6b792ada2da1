package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/services"
)

// fakeWatcher records WaitForQuiet calls.
type fakeWatcher struct {
	dir   string
	quiet time.Duration
	err   error
}

func (w *fakeWatcher) WaitForQuiet(_ context.Context, dir string, quiet time.Duration) error {
	w.dir = dir
	w.quiet = quiet
	return w.err
}

func importFixture(t *testing.T, env *testEnv) string {
	t.Helper()
	env.seed(t,
		domain.Item{GUID: "a1", MimeType: domain.DocumentMimeType, Digest: digestA, Text: "original"},
		domain.Item{GUID: "a2", MimeType: domain.DocumentMimeType, Digest: digestA},
	)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, digestA+".pdf"), "%PDF searchable")
	writeFile(t, filepath.Join(root, digestA+".txt"), "ocr text")
	return root
}

func TestImportCmd(t *testing.T) {
	env := setupServices(t)
	root := importFixture(t, env)

	out, err := executeCommand(t, "import", root)
	require.NoError(t, err)
	assert.Contains(t, out, "PDF Files Imported")
	assert.Contains(t, out, "Text Files Imported")
	assert.Contains(t, out, "Items Updated")
	assert.Contains(t, out, "Time for Import of text/pdf files:")

	a1 := env.item(t, "a1")
	assert.Equal(t, "ocr text", a1.Text)
	assert.Equal(t, filepath.Join(root, digestA+".pdf"), a1.PrintedPath)
	assert.True(t, a1.HasTag(domain.TagImported.Name()))
	assert.Equal(t, "ocr text", env.item(t, "a2").Text)
}

func TestImportCmd_AppendText(t *testing.T) {
	env := setupServices(t)
	root := importFixture(t, env)

	_, err := executeCommand(t, "import", root, "--append-text")
	require.NoError(t, err)
	assert.Equal(t, "original"+services.OCRTextSeparator+"ocr text", env.item(t, "a1").Text)
}

func TestImportCmd_WaitQuiet(t *testing.T) {
	env := setupServices(t)
	root := importFixture(t, env)

	t.Run("without watcher", func(t *testing.T) {
		_, err := executeCommand(t, "import", root, "--wait-quiet", "1s")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory watcher not configured")
	})

	t.Run("waits before importing", func(t *testing.T) {
		w := &fakeWatcher{}
		directoryWatcher = w

		out, err := executeCommand(t, "import", root, "--wait-quiet", "2s")
		require.NoError(t, err)
		assert.Equal(t, root, w.dir)
		assert.Equal(t, 2*time.Second, w.quiet)
		assert.Contains(t, out, "Waiting for")
	})

	t.Run("watch failure aborts", func(t *testing.T) {
		directoryWatcher = &fakeWatcher{err: context.Canceled}

		_, err := executeCommand(t, "import", root, "--wait-quiet", "2s")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestImportCmd_MissingDirectory(t *testing.T) {
	setupServices(t)

	_, err := executeCommand(t, "import", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import failed")
}
