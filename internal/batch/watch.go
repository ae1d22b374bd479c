package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/pageporter/internal/logging"
)

// Watch re-runs the preview pipeline for an origin file whenever it
// changes under the source root. It never writes destination files; it
// exists for iterative triage while cleaning up origin content. Blocks
// until ctx is cancelled.
func (o *Orchestrator) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// fsnotify is not recursive; register every non-reserved directory.
	err = filepath.WalkDir(o.cfg.Paths.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != o.cfg.Paths.Source && reservedDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return err
	}

	o.logger.Info(ctx, "watching for origin changes", zap.String("root", o.cfg.Paths.Source))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".xml") || isResultFile(name) {
				continue
			}
			o.previewOne(ctx, event.Name)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.logger.Warn(ctx, "watch error", zap.Error(werr))
		}
	}
}

// previewOne runs the pipeline for one changed file without writing
// anything, reporting the outcome through the process log.
func (o *Orchestrator) previewOne(ctx context.Context, originPath string) {
	rel, err := filepath.Rel(o.cfg.Paths.Source, originPath)
	if err != nil {
		return
	}
	ctx = logging.WithFile(ctx, rel)

	templatePath := filepath.Join(o.cfg.Paths.Templates, rel)
	fr, err := MigrateFile(ctx, originPath, templatePath, o.resolver)
	if err != nil {
		o.logger.Warn(ctx, "preview failed", zap.Error(err))
		return
	}
	o.logger.Info(ctx, "preview ok",
		zap.Int("items", fr.ItemCount),
		zap.Int("exclusions", len(fr.Exclusions)),
		zap.Int("warnings", fr.Log.Warnings()))
}
