package shaders

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hollowgrove/marcher/engine/core"
)

// Watcher monitors a directory for WGSL source changes and fires
// EVENT_CODE_SHADER_CHANGED with the changed path. Editors tend to emit
// bursts of write events per save, so events are debounced per path.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	done      chan struct{}
}

func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		debounce:  debounce,
		done:      make(chan struct{}),
	}, nil
}

// Start watches dir and begins dispatching change events. Non-blocking.
func (w *Watcher) Start(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	core.LogInfo("watching %q for shader changes", dir)
	go w.run()
	return nil
}

func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) run() {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".wgsl") {
				continue
			}
			pending[event.Name] = time.Now()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			core.LogWarn("shader watcher: %s", err)
		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, path)
				core.LogInfo("shader source changed: %s", path)
				context := core.EventContext{}
				context.Data.C[0] = path
				core.EventFire(core.EVENT_CODE_SHADER_CHANGED, w, context)
			}
		}
	}
}
