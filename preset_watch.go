package gekko

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const presetDebounce = 100 * time.Millisecond

// PresetWatcher reports changed preset files. It runs its own goroutine;
// consumers read Events and Errors from the main loop.
type PresetWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewPresetWatcher(dirs ...string) (*PresetWatcher, error) {
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

	watcher := newPresetWatcher(w)
	go watcher.run()
	return watcher, nil
}

func newPresetWatcher(w *fsnotify.Watcher) *PresetWatcher {
	return &PresetWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Close stops the goroutine before closing the channels it writes to.
func (w *PresetWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		if w.watcher != nil {
			err = w.watcher.Close()
		}
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *PresetWatcher) run() {
	defer close(w.done)

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
			if !isPresetFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < presetDebounce {
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
