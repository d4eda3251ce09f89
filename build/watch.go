package build

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last filesystem
// event before triggering a rebuild. Documentation generators touch many
// files in quick succession; one rebuild per burst is enough.
const DefaultDebounce = 500 * time.Millisecond

// Watcher triggers rebuilds when files under a directory tree change.
type Watcher struct {
	Dir      string
	Debounce time.Duration
}

// Run watches the directory tree until the context is canceled, invoking
// rebuild after each debounced burst of changes. Directories created while
// watching are picked up. Returns the rebuild error if one fails.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(w.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err

		case <-timer.C:
			if err := rebuild(ctx); err != nil {
				return err
			}
		}
	}
}
