package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/galcheat/galcheat/pkg/survey"
)

const tableEvents = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch monitors src.Dir for survey table changes and calls onChange with the
// reloaded survey set after each one. It runs until ctx is cancelled.
//
// If a reload fails (e.g. a half-written table), the error is logged and
// onChange is not called, so the previous set stays active.
func (src Sources) Watch(ctx context.Context, onChange func([]*survey.Survey)) error {
	if src.Dir == "" {
		return fmt.Errorf("catalog: watch: no survey dir configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(src.Dir); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", src.Dir, err)
	}

	slog.Info("catalog: watching for changes", "dir", src.Dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&tableEvents == 0 || !survey.IsTableFile(filepath.Base(event.Name)) {
				continue
			}

			surveys, err := src.Load()
			if err != nil {
				slog.Error("catalog: reload failed, keeping previous surveys",
					"dir", src.Dir, "trigger", event.Name, "err", err)
				continue
			}

			slog.Info("catalog: reloaded", "dir", src.Dir, "trigger", event.Name, "surveys", len(surveys))
			onChange(surveys)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("catalog: watcher error", "err", err)
		}
	}
}
