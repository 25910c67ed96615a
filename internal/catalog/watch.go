package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog at path whenever it is written or replaced and
// reports each result through onChange, until ctx is cancelled. The parent
// directory is watched so editors that save by renaming are noticed too.
func Watch(ctx context.Context, path string, onChange func(*Catalog, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				onChange(Load(path))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onChange(nil, fmt.Errorf("catalog watcher: %w", err))
			}
		}
	}()
	return nil
}
