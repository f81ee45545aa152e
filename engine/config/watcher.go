package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima-core/engine/core"
)

/**
 * @brief Reloads the configuration file whenever it is written or replaced.
 * Each valid reload is delivered on Updates. Files that fail to load are
 * reported on Errors and the previous configuration stays in effect.
 */
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher

	updates chan *Config
	errors  chan error
	done    chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		updates:  make(chan *Config, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
	})
	return err
}

func (w *Watcher) start() {
	defer w.wg.Done()
	defer close(w.updates)
	defer close(w.errors)

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Base(e.Name) != filepath.Base(w.path) {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				core.LogError("config reload failed: %s", err.Error())
				w.sendError(err)
				continue
			}
			core.LogInfo("config reloaded from %s", w.path)
			w.sendUpdate(cfg)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
			w.sendError(err)

		case <-w.done:
			return
		}
	}
}

// sendUpdate keeps only the newest configuration if the reader is behind.
func (w *Watcher) sendUpdate(cfg *Config) {
	for {
		select {
		case w.updates <- cfg:
			return
		case <-w.done:
			return
		default:
			select {
			case <-w.updates:
			default:
			}
		}
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	case <-w.done:
	default:
		core.LogWarn("dropping config watcher error: %v", err)
	}
}
