// Package watch reruns work when a file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long a burst of events is collapsed for.
const DefaultDebounce = 100 * time.Millisecond

// File calls onChange after path is written or re-created, once per burst
// of events. It blocks until ctx is done. onChange runs on the calling
// goroutine, so runs never overlap and File returns only after the current
// run finishes.
//
// The parent directory is watched rather than the file, so editors that
// save by renaming a temporary file still trigger a run.
func File(ctx context.Context, path string, debounce time.Duration, log logrus.FieldLogger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fire:
			fire = nil
			onChange()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			log.WithField("event", event.Op.String()).Debug("file changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}
