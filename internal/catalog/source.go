package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/pubsub"
	"github.com/zjrosen/zenedit/internal/watcher"
)

// Source names where a resolved catalog came from.
type Source string

const (
	SourceFile    Source = "file"
	SourceStore   Source = "store"
	SourceDefault Source = "default"
)

// Resolve picks the catalog to complete from: the catalog file when path is
// set, else the SQLite store at dbPath when it holds any candidates, else the
// built-in default.
func Resolve(ctx context.Context, path, dbPath string) (Catalog, Source, error) {
	if path != "" {
		c, err := Load(path)
		if err != nil {
			return Catalog{}, "", err
		}
		return c, SourceFile, nil
	}

	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			store, err := OpenStore(dbPath)
			if err != nil {
				return Catalog{}, "", fmt.Errorf("opening catalog store: %w", err)
			}
			defer func() { _ = store.Close() }()

			c, err := store.Load(ctx)
			if err != nil {
				return Catalog{}, "", fmt.Errorf("loading catalog store: %w", err)
			}
			if c.Len() > 0 {
				return c, SourceStore, nil
			}
		}
	}

	log.Debug(log.CatCatalog, "Using built-in catalog")
	return Default(), SourceDefault, nil
}

// Reloader reloads a catalog file whenever it changes and hands the result to
// apply. A file that fails to parse is logged and the previous catalog stays
// in effect.
type Reloader struct {
	path    string
	watcher *watcher.Watcher
	apply   func(Catalog) error
	events  pubsub.Publisher[Reload]
	done    chan struct{}
	once    sync.Once
	err     error
}

// Reload reports one reload attempt. Err is set when the file could not be
// loaded or applied.
type Reload struct {
	Path       string
	Candidates int
	Err        error
}

// WatchOption configures a Reloader.
type WatchOption func(*Reloader)

// WithEvents publishes every reload attempt: CatalogReloaded on success,
// CatalogFailed otherwise.
func WithEvents(p pubsub.Publisher[Reload]) WatchOption {
	return func(r *Reloader) {
		r.events = p
	}
}

// Watch starts reloading path until ctx is cancelled or Close is called.
func Watch(ctx context.Context, path string, apply func(Catalog) error, opts ...WatchOption) (*Reloader, error) {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, err
	}

	r := &Reloader{path: path, watcher: w, apply: apply, done: make(chan struct{})}
	for _, opt := range opts {
		opt(r)
	}
	go r.loop(ctx, changes)
	return r, nil
}

// Close stops watching.
func (r *Reloader) Close() error {
	r.once.Do(func() {
		close(r.done)
		r.err = r.watcher.Stop()
	})
	return r.err
}

func (r *Reloader) loop(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			_ = r.Close()
			return
		case <-r.done:
			return
		case <-changes:
			r.reload()
		}
	}
}

func (r *Reloader) reload() {
	c, err := Load(r.path)
	if err == nil {
		err = r.apply(c)
	}
	if err != nil {
		log.Warn(log.CatCatalog, "Catalog reload failed, keeping previous", "path", r.path, "error", err)
		r.publish(pubsub.CatalogFailed, Reload{Path: r.path, Err: err})
		return
	}
	log.Info(log.CatCatalog, "Catalog reloaded", "path", r.path, "candidates", c.Len())
	r.publish(pubsub.CatalogReloaded, Reload{Path: r.path, Candidates: c.Len()})
}

func (r *Reloader) publish(t pubsub.EventType, ev Reload) {
	if r.events != nil {
		r.events.Publish(t, ev)
	}
}
