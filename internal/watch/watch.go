// Package watch re-applies the theme when the wallpaper changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/TheSeaMacs/waybar-autotheme/internal/image"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with the image that changed.
type Handler func(ctx context.Context, imagePath string) error

// Watcher follows a single image file or a directory of images.
//
// A file is watched through its parent directory so that editors and wallpaper
// tools that replace the file by rename are still seen.
type Watcher struct {
	path     string
	isDir    bool
	debounce time.Duration
	logger   hclog.Logger
	fs       *fsnotify.Watcher
}

// New starts watching path. The caller must Close the watcher.
func New(path string, debounce time.Duration, logger hclog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(image.ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		isDir:    info.IsDir(),
		debounce: debounce,
		logger:   logger,
		fs:       fs,
	}

	dir := abs
	if !w.isDir {
		dir = filepath.Dir(abs)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return w, nil
}

// Path returns the watched file or directory.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. A running Run returns.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls handle once the watched image (or, for a directory, any image in
// it) has been created or written and no further events arrived for the
// debounce period. Handler errors are logged and do not stop the loop. Run
// returns when ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	w.logger.Info("watching for changes", "path", w.path)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			target, relevant := w.match(event)
			if !relevant {
				continue
			}
			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			pending = target
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := handle(ctx, pending); err != nil {
				w.logger.Error("failed to apply theme", "path", pending, "error", err)
			}
		}
	}
}

// match reports whether event concerns a watched image and returns its path.
func (w *Watcher) match(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	name := filepath.Clean(event.Name)
	if w.isDir {
		return name, filepath.Dir(name) == w.path && image.IsImageFile(name)
	}
	return w.path, name == w.path
}
