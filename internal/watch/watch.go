// Package watch converts gradient files as they appear in a directory.
package watch

import (
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/internal/cache"
)

// Number of files whose last handled content is remembered.
const seenCapacity = 512

// DefaultDebounce is how long a file must stay quiet after its last write
// event before it is handed to the callback.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports .grd files created or written in one directory. A file
// rewritten with the content it had when last handled successfully is not
// reported again.
type Watcher struct {
	watcher   *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	onFile    func(path string) error
	onError   func(error)
	seen      *cache.Cache[string, uint32]
	fired     chan settled
	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.Mutex
	running   bool
	stopped   bool
}

// New watches dir. onFile is called from the watcher's goroutine with the
// path of each settled .grd file; its error, and any watch error, goes to
// onError. Either callback may be nil.
func New(dir string, debounce time.Duration, onFile func(path string) error, onError func(error)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &Watcher{
		watcher:   watcher,
		dir:       dir,
		debounce:  debounce,
		onFile:    onFile,
		onError:   onError,
		seen:      cache.New[string, uint32](seenCapacity),
		fired:     make(chan settled),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. Calls after the first are no-ops.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running || w.stopped {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	gradkit.Logger().Info("watch: watching directory", "dir", w.dir, "debounce", w.debounce)
	go w.loop()
}

// Stop ends watching and waits for the goroutine to exit. It is safe to
// call more than once, and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.stoppedCh
		return
	}
	w.watcher.Close()
}

// settled is sent by a debounce timer. gen tells a live timer from one
// that was reset after it had already fired.
type settled struct {
	path string
	gen  uint64
}

type debounceTimer struct {
	timer *time.Timer
	gen   uint64
}

// loop debounces events per file. Each pending file owns a timer that
// hands its path back through w.fired.
func (w *Watcher) loop() {
	defer close(w.stoppedCh)
	defer w.watcher.Close()

	var gen uint64
	pending := make(map[string]debounceTimer)
	defer func() {
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isGradientFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			path := event.Name
			if p, ok := pending[path]; ok {
				p.timer.Stop()
			}
			gen++
			msg := settled{path: path, gen: gen}
			pending[path] = debounceTimer{
				timer: time.AfterFunc(w.debounce, func() {
					select {
					case w.fired <- msg:
					case <-w.stopCh:
					}
				}),
				gen: gen,
			}

		case s := <-w.fired:
			if p, ok := pending[s.path]; !ok || p.gen != s.gen {
				continue
			}
			delete(pending, s.path)
			w.handle(s.path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// handle passes a settled file to onFile unless its content is unchanged
// since the last successful call.
func (w *Watcher) handle(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.reportError(err)
		return
	}
	sum := crc32.ChecksumIEEE(data)
	if prev, ok := w.seen.Get(path); ok && prev == sum {
		gradkit.Logger().Debug("watch: content unchanged", "path", path)
		return
	}

	gradkit.Logger().Debug("watch: file settled", "path", path)
	if w.onFile != nil {
		if err := w.onFile(path); err != nil {
			w.reportError(err)
			return
		}
	}
	w.seen.Set(path, sum)
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

func isGradientFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".grd")
}
