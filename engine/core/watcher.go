package core

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a configuration file whenever it is written and
// hands the result to a callback. The callback runs on the watcher
// goroutine; anything touching the graphics context must be marshalled
// back to the context thread by the caller.
type ConfigWatcher struct {
	path     string
	onChange func(Config)

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	closed   bool
	mutex    sync.Mutex
	wg       sync.WaitGroup
}

func NewConfigWatcher(path string, onChange func(Config)) (*ConfigWatcher, error) {
	if onChange == nil {
		return nil, errors.New("config watcher needs a callback")
	}
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

	cw := &ConfigWatcher{
		path:     abs,
		onChange: onChange,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.start()
	return cw, nil
}

func (cw *ConfigWatcher) start() {
	defer cw.wg.Done()
	for {
		select {
		case e, ok := <-cw.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != cw.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				LogWarn("ignoring config change: %s", err)
				continue
			}
			LogInfo("config reloaded from %s", cw.path)
			cw.onChange(cfg)

		case err, ok := <-cw.fsnotify.Errors:
			if !ok {
				return
			}
			LogError("%s", err)

		case <-cw.done:
			return
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (cw *ConfigWatcher) Close() error {
	cw.mutex.Lock()
	if cw.closed {
		cw.mutex.Unlock()
		return nil
	}
	cw.closed = true
	close(cw.done)
	cw.mutex.Unlock()

	cw.wg.Wait()
	return cw.fsnotify.Close()
}
