package preview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/zenedit/internal/tracing"
)

// recordingRenderer echoes its input and records every call.
type recordingRenderer struct {
	mu    sync.Mutex
	texts []string
	delay time.Duration
	calls atomic.Int32
}

func (r *recordingRenderer) Render(ctx context.Context, text string) (string, error) {
	r.calls.Add(1)
	r.mu.Lock()
	r.texts = append(r.texts, text)
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "rendered:" + text, nil
}

func (r *recordingRenderer) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func waitResult(t *testing.T, s *Scheduler) Result {
	t.Helper()
	select {
	case res := <-s.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for preview result")
		return Result{}
	}
}

func TestScheduler_DebouncesBurst(t *testing.T) {
	r := &recordingRenderer{}
	s := NewScheduler(r, 40*time.Millisecond)
	defer s.Close()

	var last uint64
	for _, text := range []string{":t", ":ti", ":tit", ":title"} {
		seq, err := s.Request(text)
		require.NoError(t, err)
		last = seq
		time.Sleep(5 * time.Millisecond)
	}

	res := waitResult(t, s)
	require.NoError(t, res.Err)
	require.Equal(t, last, res.Seq)
	require.Equal(t, "rendered::title", res.Output)
	require.Equal(t, []string{":title"}, r.seen(), "one render for the whole burst")
}

func TestScheduler_SeparateBursts(t *testing.T) {
	r := &recordingRenderer{}
	s := NewScheduler(r, 20*time.Millisecond)
	defer s.Close()

	_, err := s.Request("one")
	require.NoError(t, err)
	require.Equal(t, "rendered:one", waitResult(t, s).Output)

	_, err = s.Request("two")
	require.NoError(t, err)
	require.Equal(t, "rendered:two", waitResult(t, s).Output)
}

func TestScheduler_CancelsStaleInFlight(t *testing.T) {
	r := &recordingRenderer{delay: 300 * time.Millisecond}
	s := NewScheduler(r, 10*time.Millisecond)
	defer s.Close()

	_, err := s.Request("old")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	seq, err := s.Request("new")
	require.NoError(t, err)

	start := time.Now()
	res := waitResult(t, s)
	require.Equal(t, seq, res.Seq)
	require.Equal(t, "rendered:new", res.Output)
	require.Equal(t, []string{"old", "new"}, r.seen())
	// The stale render was cancelled rather than run to completion first
	require.Less(t, time.Since(start), 550*time.Millisecond)

	select {
	case extra := <-s.Results():
		t.Fatalf("stale result delivered: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestScheduler_AtMostOneInFlight(t *testing.T) {
	var active, peak atomic.Int32
	r := RendererFunc(func(ctx context.Context, text string) (string, error) {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		select {
		case <-time.After(30 * time.Millisecond):
		case <-ctx.Done():
		}
		return text, nil
	})

	s := NewScheduler(r, 5*time.Millisecond)
	defer s.Close()

	for i := 0; i < 20; i++ {
		_, err := s.Request(string(rune('a' + i)))
		require.NoError(t, err)
		time.Sleep(8 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		select {
		case res := <-s.Results():
			return res.Output == "t"
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, int32(1), peak.Load())
}

func TestScheduler_RenderError(t *testing.T) {
	boom := errors.New("boom")
	s := NewScheduler(RendererFunc(func(context.Context, string) (string, error) {
		return "", boom
	}), 10*time.Millisecond)
	defer s.Close()

	_, err := s.Request("x")
	require.NoError(t, err)
	require.ErrorIs(t, waitResult(t, s).Err, boom)
}

func TestScheduler_Closed(t *testing.T) {
	r := &recordingRenderer{}
	s := NewScheduler(r, 50*time.Millisecond)

	_, err := s.Request("pending")
	require.NoError(t, err)
	s.Close()
	s.Close()

	_, err = s.Request("late")
	require.ErrorIs(t, err, ErrClosed)

	time.Sleep(80 * time.Millisecond)
	require.Empty(t, r.seen(), "pending debounce is dropped on close")
}

func TestScheduler_CloseCancelsInFlight(t *testing.T) {
	r := &recordingRenderer{delay: 5 * time.Second}
	s := NewScheduler(r, 5*time.Millisecond)

	_, err := s.Request("slow")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not cancel the running render")
	}
}

func TestScheduler_DefaultDebounce(t *testing.T) {
	s := NewScheduler(&recordingRenderer{}, 0)
	defer s.Close()
	require.Equal(t, DefaultDebounce, s.debounce)
}

func TestScheduler_TracesRenders(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	s := NewScheduler(&recordingRenderer{}, 5*time.Millisecond, WithTracer(tp.Tracer("test")))
	defer s.Close()

	_, err := s.Request(":title")
	require.NoError(t, err)
	waitResult(t, s)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanPreview, spans[0].Name())
}
