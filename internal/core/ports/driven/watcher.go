package driven

import (
	"context"
	"time"
)

// DirectoryWatcher observes a directory tree for file activity.
type DirectoryWatcher interface {
	// WaitForQuiet blocks until no file under dir has changed for the quiet period.
	WaitForQuiet(ctx context.Context, dir string, quiet time.Duration) error
}
