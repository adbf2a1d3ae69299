package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

// WatchForChanges attaches an fsnotify watcher to path purely to log a
// warning if the resolved configuration file changes after startup.
// Config is loaded once per process per the Lifecycle invariant, so this
// never triggers a reload — it is an operator-facing diagnostic only.
// The returned stop func closes the watcher; callers should defer it.
func WatchForChanges(path string) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					logging.Warn("config", "config file %s changed after startup; restart the process to pick up changes", path)
				}
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("config", "watcher error on %s: %v", path, watchErr)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
