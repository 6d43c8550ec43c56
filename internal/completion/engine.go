package completion

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/zenedit/internal/buffer"
	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/pubsub"
	"github.com/zjrosen/zenedit/internal/tracing"
	"github.com/zjrosen/zenedit/internal/zd"
)

var (
	// ErrInvalidClassification is returned when the classifier produced a
	// token start past the cursor. The turn is aborted and the previous
	// session kept.
	ErrInvalidClassification = errors.New("invalid classification")
	// ErrCursorOutOfRange is returned when the host reports a cursor outside
	// the text.
	ErrCursorOutOfRange = errors.New("cursor out of range")
)

// EventKind is the abstract input event a host maps its native input onto.
type EventKind int

const (
	EventTextChanged EventKind = iota
	EventNavigateUp
	EventNavigateDown
	EventCommit
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventTextChanged:
		return "text_changed"
	case EventNavigateUp:
		return "navigate_up"
	case EventNavigateDown:
		return "navigate_down"
	case EventCommit:
		return "commit"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one input turn. Text and Cursor are read for EventTextChanged only.
type Event struct {
	Kind   EventKind
	Text   string
	Cursor int
}

// Update is the engine state after a turn.
type Update struct {
	Event          EventKind
	Text           string
	Cursor         int
	Classification zd.Classification
	Query          string
	// Session is a snapshot of the open session, nil when closed.
	Session *Session
	// Spans is the highlight of Text.
	Spans []zd.Span
	// Edited is true when the turn changed Text (a commit).
	Edited bool
}

// Engine owns one buffer's completion state. It is not safe for concurrent
// use; the host calls it from its single input loop.
type Engine struct {
	provider *Provider
	classify func(text string, cursor int) zd.Classification
	tracer   trace.Tracer
	broker   *pubsub.Broker[Update]

	text           string
	cursor         int
	classification zd.Classification
	session        *Session
	spans          []zd.Span
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTracer sets the tracer used for per-turn spans.
func WithTracer(tracer trace.Tracer) EngineOption {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithBroker publishes every Update on broker instead of a private one.
func WithBroker(broker *pubsub.Broker[Update]) EngineOption {
	return func(e *Engine) {
		if broker != nil {
			e.broker = broker
		}
	}
}

// NewEngine creates an engine with an empty buffer and no session.
func NewEngine(provider *Provider, opts ...EngineOption) *Engine {
	e := &Engine{
		provider: provider,
		classify: zd.Classify,
		tracer:   noop.NewTracerProvider().Tracer("noop"),
		broker:   pubsub.NewBroker[Update](),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe returns a channel of updates, closed when ctx is cancelled.
func (e *Engine) Subscribe(ctx context.Context) <-chan pubsub.Event[Update] {
	return e.broker.Subscribe(ctx)
}

// Broker exposes the update broker for Bubble Tea listeners.
func (e *Engine) Broker() *pubsub.Broker[Update] {
	return e.broker
}

// Close shuts down the update broker.
func (e *Engine) Close() {
	e.broker.Close()
}

// Session returns a snapshot of the open session, or nil.
func (e *Engine) Session() *Session {
	return e.session.Clone()
}

// Text returns the current buffer text.
func (e *Engine) Text() string { return e.text }

// Cursor returns the current cursor offset.
func (e *Engine) Cursor() int { return e.cursor }

// Handle dispatches an abstract input event.
func (e *Engine) Handle(ctx context.Context, ev Event) (Update, error) {
	switch ev.Kind {
	case EventTextChanged:
		return e.OnTextChanged(ctx, ev.Text, ev.Cursor)
	case EventNavigateUp:
		return e.Navigate(ctx, Up), nil
	case EventNavigateDown:
		return e.Navigate(ctx, Down), nil
	case EventCommit:
		u, _ := e.Commit(ctx)
		return u, nil
	case EventCancel:
		return e.Cancel(ctx), nil
	default:
		return e.snapshot(ev.Kind, false), fmt.Errorf("unknown event kind %d", ev.Kind)
	}
}

// OnTextChanged re-classifies the buffer and re-populates or closes the
// session. A classification that violates start <= cursor aborts the turn:
// the text is recorded, the previous session is left as-is, and
// ErrInvalidClassification is returned for the host to ignore.
func (e *Engine) OnTextChanged(ctx context.Context, text string, cursor int) (Update, error) {
	ctx, span := e.startTurn(ctx, EventTextChanged)
	defer span.End()

	if cursor < 0 || cursor > len(text) {
		err := fmt.Errorf("%w: %d not in [0, %d]", ErrCursorOutOfRange, cursor, len(text))
		log.ErrorErr(log.CatClassify, "rejecting text change", err)
		span.SetStatus(codes.Error, err.Error())
		return e.snapshot(EventTextChanged, false), err
	}

	e.text = text
	e.cursor = cursor
	e.spans = zd.Highlight(text)

	c := e.classify(text, cursor)
	if !c.Valid(cursor) {
		err := fmt.Errorf("%w: %s start %d past cursor %d", ErrInvalidClassification, c.Kind, c.Start, cursor)
		log.ErrorErr(log.CatClassify, "classification rejected", err)
		span.AddEvent(tracing.EventClassificationRejected)
		span.SetStatus(codes.Error, err.Error())
		return e.publish(EventTextChanged, false), err
	}

	query := c.Query(text, cursor)
	span.SetAttributes(
		attribute.String(tracing.AttrTokenKind, c.Kind.String()),
		attribute.Int(tracing.AttrTokenStart, c.Start),
		attribute.String(tracing.AttrTokenQuery, query),
	)
	log.Debug(log.CatClassify, "classified", "kind", c.Kind, "start", c.Start, "cursor", cursor)

	e.classification = c
	var candidates []Candidate
	if !c.IsNone() {
		candidates = e.provider.Provide(ctx, c, query)
	}

	wasOpen := e.session.IsOpen()
	e.session = Open(c, text, cursor, candidates)
	switch {
	case e.session.IsOpen():
		span.AddEvent(tracing.EventSessionOpened, trace.WithAttributes(
			attribute.String(tracing.AttrSessionID, e.session.ID),
			attribute.Int(tracing.AttrCandidateCount, len(candidates)),
		))
		log.Debug(log.CatSession, "session opened", "id", e.session.ID, "insertAt", e.session.InsertAt, "candidates", len(candidates))
	case wasOpen:
		span.AddEvent(tracing.EventSessionClosed)
		log.Debug(log.CatSession, "session closed", "kind", c.Kind, "query", query)
	}

	return e.publish(EventTextChanged, false), nil
}

// Navigate moves the selection. A closed session is left closed.
func (e *Engine) Navigate(ctx context.Context, d Direction) Update {
	kind := EventNavigateDown
	if d == Up {
		kind = EventNavigateUp
	}
	_, span := e.startTurn(ctx, kind)
	defer span.End()

	if e.session.IsOpen() {
		e.session.Navigate(d)
		span.SetAttributes(attribute.Int(tracing.AttrSelected, e.session.Selected))
	}
	return e.publish(kind, false)
}

// Select moves the selection to index i, as a pointer click does.
func (e *Engine) Select(i int) bool {
	return e.session.Select(i)
}

// Commit splices the selected candidate into the buffer and closes the
// session. Returns false, with nothing changed, when no session is open.
func (e *Engine) Commit(ctx context.Context) (Update, bool) {
	_, span := e.startTurn(ctx, EventCommit)
	defer span.End()

	edit, ok := e.session.Edit()
	if !ok {
		return e.snapshot(EventCommit, false), false
	}
	if edit.Start < 0 || edit.Start > edit.End || edit.End > len(e.text) {
		// The session outlived the text it was opened on
		err := fmt.Errorf("%w: edit [%d:%d] on length %d", ErrInvalidClassification, edit.Start, edit.End, len(e.text))
		log.ErrorErr(log.CatSession, "commit aborted", err)
		span.SetStatus(codes.Error, err.Error())
		e.session = nil
		return e.publish(EventCommit, false), false
	}

	id := e.session.ID
	e.text, e.cursor = buffer.Splice(e.text, edit.Start, edit.End, edit.Text)
	e.spans = zd.Highlight(e.text)
	e.session = nil
	e.classification = zd.None

	span.AddEvent(tracing.EventSessionCommitted, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, id),
		attribute.String("name", edit.Text),
	))
	log.Info(log.CatSession, "committed", "id", id, "name", edit.Text, "cursor", e.cursor)
	return e.publish(EventCommit, true), true
}

// Cancel closes the session without touching the buffer.
func (e *Engine) Cancel(ctx context.Context) Update {
	_, span := e.startTurn(ctx, EventCancel)
	defer span.End()

	if e.session.IsOpen() {
		log.Debug(log.CatSession, "session cancelled", "id", e.session.ID)
		span.AddEvent(tracing.EventSessionClosed)
	}
	e.session = nil
	return e.publish(EventCancel, false)
}

func (e *Engine) startTurn(ctx context.Context, kind EventKind) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, tracing.SpanPrefixEngine+kind.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(tracing.AttrEventType, kind.String()),
			attribute.Int(tracing.AttrCursor, e.cursor),
			attribute.Int(tracing.AttrTextLength, len(e.text)),
		),
	)
}

func (e *Engine) snapshot(kind EventKind, edited bool) Update {
	return Update{
		Event:          kind,
		Text:           e.text,
		Cursor:         e.cursor,
		Classification: e.classification,
		Query:          e.classification.Query(e.text, e.cursor),
		Session:        e.session.Clone(),
		Spans:          e.spans,
		Edited:         edited,
	}
}

// publish snapshots the state and emits it. The event type follows the
// session: opened when a text change produced one, updated while it stays
// open, closed otherwise.
func (e *Engine) publish(kind EventKind, edited bool) Update {
	u := e.snapshot(kind, edited)
	eventType := pubsub.SessionClosed
	switch {
	case u.Session != nil && kind == EventTextChanged:
		eventType = pubsub.SessionOpened
	case u.Session != nil:
		eventType = pubsub.SessionUpdated
	}
	e.broker.Publish(eventType, u)
	return u
}
