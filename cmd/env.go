package cmd

import (
	"context"
	"fmt"

	"github.com/zjrosen/zenedit/internal/catalog"
	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/index"
	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/pubsub"
	"github.com/zjrosen/zenedit/internal/tracing"
)

// environment is the completion stack shared by the editor and the
// non-interactive subcommands.
type environment struct {
	tracer   *tracing.Provider
	catalog  catalog.Catalog
	source   catalog.Source
	provider *completion.Provider
	engine   *completion.Engine
	reloader *catalog.Reloader
	reloads  *pubsub.Broker[catalog.Reload]
}

func newEnvironment(ctx context.Context) (*environment, error) {
	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	cat, source, err := catalog.Resolve(ctx, cfg.Catalog.Path, cfg.Catalog.DBPath)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	log.Info(log.CatCatalog, "Catalog resolved", "source", source, "candidates", cat.Len())

	indexes, err := buildIndexes(cat)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	provider := completion.NewProvider(indexes,
		completion.WithMaxCandidates(cfg.Completion.MaxCandidates),
		completion.WithIconPrefix(cfg.Completion.IconPrefix),
		completion.WithProviderTracer(tp.Tracer()),
	)
	engine := completion.NewEngine(provider, completion.WithTracer(tp.Tracer()))

	return &environment{
		tracer:   tp,
		catalog:  cat,
		source:   source,
		provider: provider,
		engine:   engine,
		reloads:  pubsub.NewBroker[catalog.Reload](),
	}, nil
}

func buildIndexes(cat catalog.Catalog) (completion.Indexes, error) {
	return index.Build(cat.Items(), index.Matcher(cfg.Completion.Matcher), cfg.Completion.CacheTTL)
}

// watchCatalog rebuilds the indexes whenever the catalog file changes.
// Only file-backed catalogs are watched.
func (e *environment) watchCatalog(ctx context.Context) error {
	if !cfg.Catalog.Watch || e.source != catalog.SourceFile {
		return nil
	}
	r, err := catalog.Watch(ctx, cfg.Catalog.Path, func(c catalog.Catalog) error {
		indexes, err := buildIndexes(c)
		if err != nil {
			return err
		}
		e.provider.SetIndexes(indexes)
		return nil
	}, catalog.WithEvents(e.reloads))
	if err != nil {
		return fmt.Errorf("watching catalog: %w", err)
	}
	e.reloader = r
	return nil
}

// Close stops the watcher and flushes traces.
func (e *environment) Close() {
	if e.reloader != nil {
		_ = e.reloader.Close()
	}
	e.reloads.Close()
	e.engine.Close()
	if err := e.tracer.Shutdown(context.Background()); err != nil {
		log.Warn(log.CatConfig, "Tracing shutdown failed", "error", err)
	}
}
