package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aliaslint/aliaslint/internal/jsparse"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

type watchState struct {
	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching atomic.Bool
	lastEvent  map[string]time.Time
	onLint     func(filename string, issues []tt.Issue)
}

const watchDebounce = 200 * time.Millisecond

// SetWatchCallback registers the function invoked with the issues of each
// re-linted file.
func (e *Engine) SetWatchCallback(fn func(filename string, issues []tt.Issue)) {
	e.onLint = fn
}

// StartWatching begins watching the given directories and re-lints files as
// they change.
func (e *Engine) StartWatching(dirs []string) error {
	if e.isWatching.Load() {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcher
	e.watchDirs = dirs
	e.lastEvent = make(map[string]time.Time)

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return e.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.isWatching.Store(true)
	go e.watchLoop()
	return nil
}

// StopWatching stops the watch loop and closes the watcher.
func (e *Engine) StopWatching() error {
	if !e.isWatching.Swap(false) {
		return nil
	}
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching.Load() {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case _, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !jsparse.SupportedExtensions[filepath.Ext(event.Name)] {
		return
	}

	// editors fire several events per save
	now := time.Now()
	if last, ok := e.lastEvent[event.Name]; ok && now.Sub(last) < watchDebounce {
		return
	}
	e.lastEvent[event.Name] = now

	issues, err := e.Run(event.Name)
	if err != nil {
		return
	}
	if e.onLint != nil {
		e.onLint(event.Name, issues)
	}
}
