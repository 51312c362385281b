package render

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports edits to GLSL files so the renderer can rebuild its
// programs. Events are delivered on a channel and must be drained from the
// GL thread.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewShaderWatcher watches dirs for shader changes
func NewShaderWatcher(dirs ...string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &ShaderWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching. It is safe to call more than once.
func (w *ShaderWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Changed drains pending events and reports whether any shader changed
func (w *ShaderWatcher) Changed() bool {
	changed := false
	for {
		select {
		case name := <-w.Events:
			Logger().Debug("shader changed", "file", name)
			changed = true
		case err := <-w.Errors:
			Logger().Warn("shader watcher", "err", err)
		default:
			return changed
		}
	}
}

func (w *ShaderWatcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isShaderFile(event.Name) {
				continue
			}
			// Editors often write a file several times in a row
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isShaderFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".glsl" || ext == ".vert" || ext == ".frag" || ext == ".tesc" || ext == ".tese"
}
