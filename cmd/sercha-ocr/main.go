// Command sercha-ocr runs the OCR workflow over a document collection.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/export/localfs"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/export/minio"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/sorter"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driven/watch"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-ocr/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-ocr/internal/core/domain"
	"github.com/custodia-labs/sercha-ocr/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-ocr/internal/core/services"
	"github.com/custodia-labs/sercha-ocr/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening collection: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing collection", "error", cerr)
		}
	}()

	tagger := ratelimit.Wrap(store.TagService(), settings.Tagging.MaxFlushesPerSecond)

	svc := cli.Services{
		Collection:     services.NewCollectionService(store.ItemStore()),
		Settings:       settingsService,
		Classification: services.NewClassificationService(store.ItemStore(), tagger),
		Import:         services.NewImportService(store.ItemStore(), store.ItemImporter(), tagger),
		Watcher:        watch.New(),
	}
	// Export stays unconfigured on a bad target so settings can still be fixed.
	if exporter, err := newExporter(settings.Export); err != nil {
		logger.Warn("export unavailable", "target", settings.Export.Target, "error", err)
	} else {
		svc.Export = services.NewExportService(exporter, tagger, sorter.New())
	}
	if isInteractive() {
		svc.Prompter = tui.NewPrompter()
	}

	cli.SetVersion(version)
	cli.SetServices(svc)

	logger.Debug("collection opened", "path", store.Path(), "export_target", settings.Export.Target)
	return cli.Execute(ctx)
}

// newExporter returns the export target selected in settings.
func newExporter(cfg domain.ExportSettings) (driven.ItemExporter, error) {
	if cfg.Target != domain.ExportTargetMinio {
		return localfs.New(), nil
	}
	exporter, err := minio.New(cfg.Minio)
	if err != nil {
		return nil, fmt.Errorf("configuring minio export: %w", err)
	}
	return exporter, nil
}

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
