package mcgen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch calls run once and then again after each quiet period of
// debounce following a change to a model, blockstate or block class
// below root. It returns when ctx is done.
func Watch(ctx context.Context, root string, debounce time.Duration, log *logrus.Logger, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := watchTree(w, root, root); err != nil {
		return err
	}

	if err := run(ctx); err != nil {
		log.WithError(err).Error("run failed")
	}

	// fire is nil while no run is scheduled.
	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(ev.Name) == filepath.Clean(root) && skippedRootDirs[filepath.Base(ev.Name)] {
				continue
			}
			// Files created together with a new directory may predate
			// its watch, so a new directory always schedules a run.
			newDir := false
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := watchTree(w, root, ev.Name); err != nil {
						log.WithError(err).Warn("watch new directory")
					}
					newDir = true
				}
			}
			if !newDir && !relevantChange(ev.Name) {
				continue
			}
			log.WithFields(logrus.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("change")
			timer.Reset(debounce)
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")

		case <-fire:
			fire = nil
			if err := run(ctx); err != nil {
				log.WithError(err).Error("run failed")
			}
		}
	}
}

// watchTree adds dir and its sub-directories, skipping the root-level
// directories DiscoverFiles skips.
func watchTree(w *fsnotify.Watcher, root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if filepath.Dir(path) == filepath.Clean(root) && skippedRootDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// relevantChange filters events down to inputs. Generated *BB.java
// classes are excluded so writing them does not trigger another run.
func relevantChange(path string) bool {
	switch filepath.Ext(path) {
	case ".json":
		return IsBlockModel(path) || IsBlockstate(path)
	case ".java":
		return !strings.HasSuffix(path, "BB.java")
	}
	return false
}
