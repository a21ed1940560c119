package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-md2site/internal/site"
)

// DefaultDebounce is how long Watch waits after the last change before
// rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration
	// OnBuild receives the outcome of the initial build and every rebuild.
	OnBuild func(*Report, error)
}

// Watch builds the site, then rebuilds it whenever a file under the site
// root changes, until ctx is cancelled. Events inside the output directory
// and hidden files other than the ignore file are not watched.
func Watch(ctx context.Context, b *Builder, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.OnBuild == nil {
		opts.OnBuild = func(*Report, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	w := &watch{b: b, watcher: watcher, outDir: b.OutputDir()}
	w.addDirsRecursive(b.Root())

	opts.OnBuild(b.Build(ctx))
	b.log.Watching(b.Root())

	rebuildReq, trigger, stop := debouncer(opts.Debounce)
	defer stop()

	workerCtx, stopWorker := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-rebuildReq:
				opts.OnBuild(b.Build(workerCtx))
			}
		}
	}()
	defer func() {
		stopWorker()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.handle(ev) {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.log.Warn("watcher error", "error", err)
		}
	}
}

// debouncer returns a channel that receives one value once trigger has not
// been called for d. Pending signals coalesce.
func debouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

type watch struct {
	b       *Builder
	watcher *fsnotify.Watcher
	outDir  string
}

// handle reacts to one event and reports whether it should schedule a build.
func (w *watch) handle(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || w.ignored(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
		}
	}
	w.b.log.ChangeDetected(ev.Name, ev.Op.String())
	return true
}

// ignored reports whether changes to path never affect the build.
func (w *watch) ignored(path string) bool {
	if w.outDir != "" {
		if rel, err := filepath.Rel(w.outDir, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	base := filepath.Base(path)
	if base == site.IgnoreFile {
		return false
	}
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")
}

func (w *watch) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.b.log.Warn("watch add failed", "dir", path, "error", err)
		}
		return nil
	})
}
