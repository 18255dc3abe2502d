// Package watch signals when a shader file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 100 * time.Millisecond

// ShaderWatcher watches the directory of a single shader file. Editors often
// save by writing a temp file and renaming it, so watching the file itself
// would lose track after the first save.
type ShaderWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	logger   *zap.Logger
	debounce time.Duration

	reloads chan string
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu        sync.Mutex
	running   bool
	closeOnce sync.Once
}

// New creates a watcher for path. Call Start to begin delivering events.
func New(path string, logger *zap.Logger) (*ShaderWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve shader path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	return &ShaderWatcher{
		watcher:  w,
		path:     abs,
		dir:      filepath.Dir(abs),
		logger:   logger,
		debounce: DefaultDebounce,
		reloads:  make(chan string, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period before a reload is signalled.
// It has no effect once Start has been called.
func (sw *ShaderWatcher) SetDebounce(d time.Duration) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if !sw.running {
		sw.debounce = d
	}
}

// Reloads delivers the shader path after each burst of changes. Pending
// notifications coalesce, so a slow reader sees at most one.
func (sw *ShaderWatcher) Reloads() <-chan string {
	return sw.reloads
}

// Start begins watching in a background goroutine
func (sw *ShaderWatcher) Start(ctx context.Context) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.running {
		return nil
	}

	if err := sw.watcher.Add(sw.dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", sw.dir, err)
	}
	sw.running = true

	go sw.run(ctx)

	sw.logger.Info("watching shader for changes", zap.String("path", sw.path))
	return nil
}

// Stop ends the watch loop and releases the underlying watcher
func (sw *ShaderWatcher) Stop() {
	sw.mu.Lock()
	running := sw.running
	sw.running = false
	sw.mu.Unlock()

	if running {
		close(sw.stopCh)
		<-sw.doneCh
	}

	sw.closeOnce.Do(func() {
		if err := sw.watcher.Close(); err != nil {
			sw.logger.Warn("error closing shader watcher", zap.Error(err))
		}
	})
}

func (sw *ShaderWatcher) run(ctx context.Context) {
	defer close(sw.doneCh)

	timer := time.NewTimer(sw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-sw.stopCh:
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.relevant(event) {
				continue
			}
			sw.logger.Debug("shader file event", zap.String("op", event.Op.String()))
			timer.Reset(sw.debounce)

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("shader watcher error", zap.Error(err))

		case <-timer.C:
			select {
			case sw.reloads <- sw.path:
			default:
			}
		}
	}
}

func (sw *ShaderWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != sw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
