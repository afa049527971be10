package rulebase

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 500 * time.Millisecond

// ReloadCallback is called with each successfully decoded definition.
// Returning an error logs it; the remaining callbacks still run.
type ReloadCallback func(*Definition) error

// ErrorCallback is called when the changed file cannot be loaded
type ErrorCallback func(error)

// Watcher reloads a rule-base file when it changes.
// The parent directory is watched so editors that replace the file
// (write to a temp file, then rename) are still seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.SugaredLogger

	mu        sync.Mutex
	timer     *time.Timer
	stopped   bool
	callbacks []ReloadCallback
	onError   []ErrorCallback

	wg sync.WaitGroup
}

// NewWatcher creates a watcher for path. A zero debounce uses DefaultDebounce.
// l may be nil.
func NewWatcher(path string, debounce time.Duration, l *zap.SugaredLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: debounce,
		logger:   logger.AddWatchSymbol(l),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// OnReload registers a callback for successful reloads
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// OnError registers a callback for failed reloads
func (w *Watcher) OnError(cb ErrorCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = append(w.onError, cb)
}

// Start begins watching in a background goroutine
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.watchLoop()
}

// Stop ends watching and waits for the event loop to exit.
// A pending reload is cancelled.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debugw("rule base changed",
				logger.FieldFile, event.Name,
				logger.FieldOp, event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("rule base watcher error", logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	// Each scheduled reload holds the wait group until it runs or is cancelled
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	defer w.wg.Done()

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	callbacks := append([]ReloadCallback(nil), w.callbacks...)
	onError := append([]ErrorCallback(nil), w.onError...)
	w.mu.Unlock()

	def, err := Load(w.path)
	if err != nil {
		w.logger.Errorw("rule base reload failed", logger.FieldPath, w.path, logger.FieldError, err)
		for _, cb := range onError {
			cb(err)
		}
		return
	}

	w.logger.Infow("rule base reloaded",
		logger.FieldRuleBase, def.Name,
		logger.FieldRules, len(def.Rules))

	for _, cb := range callbacks {
		if err := cb(def); err != nil {
			w.logger.Warnw("rule base reload callback error", logger.FieldError, err)
			for _, ecb := range onError {
				ecb(err)
			}
		}
	}
}
