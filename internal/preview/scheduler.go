package preview

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/zenedit/internal/log"
	"github.com/zjrosen/zenedit/internal/tracing"
)

// DefaultDebounce is the quiescence window before a render starts.
const DefaultDebounce = 300 * time.Millisecond

// ErrClosed is returned by Request after Close.
var ErrClosed = errors.New("preview scheduler closed")

// Result is a finished render. Seq identifies the request it answers.
type Result struct {
	Seq    uint64
	Output string
	Err    error
}

// Scheduler debounces render requests. A render starts once no request has
// arrived for the debounce window. While a render runs, newer requests cancel
// it and the newest text is rendered when it returns, so at most one render
// is in flight. Results for superseded requests are dropped.
type Scheduler struct {
	renderer Renderer
	debounce time.Duration
	tracer   trace.Tracer
	results  chan Result

	mu       sync.Mutex
	seq      uint64 // latest request
	text     string // latest request text
	timer    *time.Timer
	inFlight bool
	rerun    bool // a newer request is waiting for the in-flight render
	cancel   context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithTracer records a span per render.
func WithTracer(tracer trace.Tracer) SchedulerOption {
	return func(s *Scheduler) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewScheduler creates a scheduler over r. A debounce <= 0 uses DefaultDebounce.
func NewScheduler(r Renderer, debounce time.Duration, opts ...SchedulerOption) *Scheduler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s := &Scheduler{
		renderer: r,
		debounce: debounce,
		tracer:   noop.NewTracerProvider().Tracer("noop"),
		results:  make(chan Result, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Results delivers finished renders. Only the newest unread result is kept.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Request schedules a render of text and returns its sequence number.
func (s *Scheduler) Request(text string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	s.seq++
	s.text = text
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.fire)
	} else {
		s.timer.Reset(s.debounce)
	}
	return s.seq, nil
}

// Close stops the scheduler, cancels any running render and waits for it.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// fire runs when the debounce window elapses.
func (s *Scheduler) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.inFlight {
		s.rerun = true
		s.cancel()
		return
	}
	s.startLocked()
}

func (s *Scheduler) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.inFlight = true
	s.rerun = false

	seq, text := s.seq, s.text
	s.wg.Add(1)
	go s.render(ctx, seq, text)
}

func (s *Scheduler) render(ctx context.Context, seq uint64, text string) {
	defer s.wg.Done()

	ctx, span := s.tracer.Start(ctx, tracing.SpanPreview,
		trace.WithAttributes(attribute.Int(tracing.AttrTextLength, len(text))),
	)
	out, err := s.renderer.Render(ctx, text)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	s.inFlight = false

	if s.closed {
		return
	}
	if s.rerun || seq != s.seq {
		log.Debug(log.CatPreview, "Dropping stale preview", "seq", seq, "latest", s.seq)
		if s.rerun {
			s.startLocked()
		}
		return
	}
	if err != nil {
		log.Warn(log.CatPreview, "Preview render failed", "seq", seq, "error", err)
	}
	s.deliverLocked(Result{Seq: seq, Output: out, Err: err})
}

// deliverLocked replaces any unread result with r.
func (s *Scheduler) deliverLocked(r Result) {
	select {
	case <-s.results:
	default:
	}
	s.results <- r
}
