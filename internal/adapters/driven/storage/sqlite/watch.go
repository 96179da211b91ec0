package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/techdex-labs/techdex-cli/internal/logger"
)

// defaultDebounce coalesces the burst of filesystem events a single
// SQLite transaction produces into one notification.
const defaultDebounce = 2 * time.Second

// Watcher observes the database file for external writes and invokes a
// callback once the writes settle. Long-running commands use it to
// trigger a projection refresh when ingestion or admin tooling updates
// the content store out-of-process.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dbPath   string
	debounce time.Duration
	onChange func()
}

// NewWatcher creates a watcher for the store's database file. onChange
// is called from the watch goroutine after each settled write burst.
func NewWatcher(store *Store, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	// Watch the directory, not the file: SQLite in WAL mode writes
	// through content.db-wal and rotates files on checkpoint.
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching data directory: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		dbPath:   store.Path(),
		debounce: defaultDebounce,
		onChange: onChange,
	}, nil
}

// Start runs the watch loop until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Content store changed on disk: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Debug("Filesystem watcher error: %v", err)
		}
	}
}

// relevant filters events down to writes of the database and its WAL.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.HasPrefix(event.Name, w.dbPath)
}
