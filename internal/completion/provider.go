package completion

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/tracing"
	"github.com/zjrosen/zenedit/internal/zd"
)

const (
	// DefaultMaxCandidates caps every candidate list.
	DefaultMaxCandidates = 100
	// DefaultIconPrefix switches key completion over to the icon index.
	DefaultIconPrefix = ":fa-"
)

// Provider looks up candidates for a classified cursor position.
type Provider struct {
	mu            sync.RWMutex
	indexes       Indexes
	maxCandidates int
	iconPrefix    string
	tracer        trace.Tracer
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithMaxCandidates overrides the candidate cap. Values < 1 are ignored.
func WithMaxCandidates(n int) ProviderOption {
	return func(p *Provider) {
		if n > 0 {
			p.maxCandidates = n
		}
	}
}

// WithIconPrefix overrides the key prefix that selects the icon index.
func WithIconPrefix(prefix string) ProviderOption {
	return func(p *Provider) {
		if prefix != "" {
			p.iconPrefix = prefix
		}
	}
}

// WithProviderTracer sets the tracer for lookup spans.
func WithProviderTracer(tracer trace.Tracer) ProviderOption {
	return func(p *Provider) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// NewProvider creates a Provider over the given indexes.
func NewProvider(indexes Indexes, opts ...ProviderOption) *Provider {
	p := &Provider{
		indexes:       indexes,
		maxCandidates: DefaultMaxCandidates,
		iconPrefix:    DefaultIconPrefix,
		tracer:        noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetIndexes swaps the indexes, e.g. after a catalog reload. Safe to call
// while lookups are running.
func (p *Provider) SetIndexes(indexes Indexes) {
	p.mu.Lock()
	p.indexes = indexes
	p.mu.Unlock()
}

// Provide returns at most maxCandidates candidates for the classification,
// in the index's order. Strings and None never have candidates. A failing
// index is logged and treated as empty.
func (p *Provider) Provide(ctx context.Context, c zd.Classification, query string) []Candidate {
	category, search, rename := p.route(c, query)
	if category == "" {
		return nil
	}

	_, span := p.tracer.Start(ctx, tracing.SpanProvide,
		trace.WithAttributes(
			attribute.String(tracing.AttrIndex, string(category)),
			attribute.String(tracing.AttrTokenQuery, search),
		),
	)
	defer span.End()

	p.mu.RLock()
	index := p.indexes.For(category)
	p.mu.RUnlock()
	if index == nil {
		log.Debug(log.CatComplete, "no index configured", "category", category)
		return nil
	}

	matches, err := index.Search(search)
	if err != nil {
		log.Warn(log.CatComplete, "index search failed", "category", category, "query", search, "error", err)
		span.AddEvent(tracing.EventIndexFailed)
		span.SetStatus(codes.Error, err.Error())
		return nil
	}

	n := min(len(matches), p.maxCandidates)
	out := make([]Candidate, n)
	for i := range out {
		out[i] = rename(matches[i].Item)
	}

	span.SetAttributes(attribute.Int(tracing.AttrCandidateCount, n))
	log.Debug(log.CatComplete, "candidates", "category", category, "query", search, "count", n)
	return out
}

// route picks the index, the search text and a result mapping for c.
func (p *Provider) route(c zd.Classification, query string) (Category, string, func(Candidate) Candidate) {
	same := func(cand Candidate) Candidate { return cand }

	switch c.Kind {
	case zd.KindKey:
		if icon, ok := strings.CutPrefix(query, p.iconPrefix); ok {
			return CategoryIcons, icon, p.iconName
		}
		return CategoryKeys, query, same
	case zd.KindSymbol:
		return CategorySymbols, query, same
	case zd.KindAnnotation:
		return CategoryAnnotations, query, same
	default:
		return "", "", nil
	}
}

// iconName gives an icon candidate the full key prefix so committing at the
// key start replaces the whole token.
func (p *Provider) iconName(cand Candidate) Candidate {
	if !strings.HasPrefix(cand.Name, p.iconPrefix) {
		if cand.Icon == "" {
			cand.Icon = cand.Name
		}
		cand.Name = p.iconPrefix + cand.Name
	}
	return cand
}
