package completion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"pgregory.net/rapid"

	"github.com/zjrosen/zenedit/internal/pubsub"
	"github.com/zjrosen/zenedit/internal/zd"
)

func newTestEngine(opts ...EngineOption) *Engine {
	return NewEngine(NewProvider(testIndexes()), opts...)
}

func TestEngine_KeyOpensSession(t *testing.T) {
	e := newTestEngine()
	u, err := e.OnTextChanged(context.Background(), ":t", 2)
	require.NoError(t, err)

	require.Equal(t, zd.Classification{Kind: zd.KindKey, Start: 0}, u.Classification)
	require.Equal(t, ":t", u.Query)
	require.NotNil(t, u.Session)
	require.Equal(t, []string{":title", ":tags"}, names(u.Session.Candidates))
	require.False(t, u.Edited)
}

func TestEngine_CommitSymbol(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	u, err := e.OnTextChanged(ctx, ":role #adm", 10)
	require.NoError(t, err)
	require.Equal(t, zd.Classification{Kind: zd.KindSymbol, Start: 7}, u.Classification)
	require.Equal(t, "adm", u.Query)

	u, ok := e.Commit(ctx)
	require.True(t, ok)
	require.Equal(t, ":role #admin", u.Text)
	require.Equal(t, 12, u.Cursor)
	require.True(t, u.Edited)
	require.Nil(t, u.Session)
	require.NotEmpty(t, u.Spans)

	// Committing again without reopening is a no-op
	u, ok = e.Commit(ctx)
	require.False(t, ok)
	require.Equal(t, ":role #admin", u.Text)
	require.Equal(t, 12, u.Cursor)
	require.False(t, u.Edited)
}

func TestEngine_NavigateThenCommit(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":role #adm", 10)
	require.NoError(t, err)

	u := e.Navigate(ctx, Up)
	require.Equal(t, 1, u.Session.Selected)

	u, ok := e.Commit(ctx)
	require.True(t, ok)
	require.Equal(t, ":role #administrator", u.Text)
	require.Equal(t, len(":role #administrator"), u.Cursor)
}

func TestEngine_NoCandidatesCloses(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":role #adm", 10)
	require.NoError(t, err)
	require.NotNil(t, e.Session())

	u, err := e.OnTextChanged(ctx, ":role #zzz", 10)
	require.NoError(t, err)
	require.Equal(t, zd.KindSymbol, u.Classification.Kind)
	require.Nil(t, u.Session)
	require.Nil(t, e.Session())
}

func TestEngine_NoneCloses(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":t", 2)
	require.NoError(t, err)

	u, err := e.OnTextChanged(ctx, "plain x", 7)
	require.NoError(t, err)
	require.True(t, u.Classification.IsNone())
	require.Nil(t, u.Session)
}

func TestEngine_Cancel(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":t", 2)
	require.NoError(t, err)

	u := e.Cancel(ctx)
	require.Nil(t, u.Session)
	require.Equal(t, ":t", u.Text)
	require.Equal(t, 2, u.Cursor)

	_, ok := e.Commit(ctx)
	require.False(t, ok)
}

func TestEngine_IconCommitReplacesWholeToken(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":fa-hou", 7)
	require.NoError(t, err)

	u, ok := e.Commit(ctx)
	require.True(t, ok)
	require.Equal(t, ":fa-house", u.Text)
	require.Equal(t, 9, u.Cursor)
}

func TestEngine_InvalidClassificationKeepsSession(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":t", 2)
	require.NoError(t, err)
	before := e.Session()

	e.classify = func(string, int) zd.Classification {
		return zd.Classification{Kind: zd.KindKey, Start: 99}
	}
	u, err := e.OnTextChanged(ctx, ":ta", 3)
	require.ErrorIs(t, err, ErrInvalidClassification)
	require.NotNil(t, u.Session)
	require.Equal(t, before.ID, u.Session.ID)
	require.Equal(t, ":ta", u.Text)
}

func TestEngine_StaleSessionCommitAborts(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":role #adm", 10)
	require.NoError(t, err)

	// A rejected turn shortens the text under the open session
	e.classify = func(string, int) zd.Classification {
		return zd.Classification{Kind: zd.KindKey, Start: 5}
	}
	_, err = e.OnTextChanged(ctx, ":ro", 3)
	require.ErrorIs(t, err, ErrInvalidClassification)

	u, ok := e.Commit(ctx)
	require.False(t, ok)
	require.Equal(t, ":ro", u.Text)
	require.Nil(t, u.Session)
}

func TestEngine_CursorOutOfRange(t *testing.T) {
	e := newTestEngine()
	_, err := e.OnTextChanged(context.Background(), "abc", 4)
	require.ErrorIs(t, err, ErrCursorOutOfRange)
	require.Empty(t, e.Text())
}

func TestEngine_Handle(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	u, err := e.Handle(ctx, Event{Kind: EventTextChanged, Text: "^", Cursor: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"^note", "^todo"}, names(u.Session.Candidates))

	u, err = e.Handle(ctx, Event{Kind: EventNavigateDown})
	require.NoError(t, err)
	require.Equal(t, 1, u.Session.Selected)

	u, err = e.Handle(ctx, Event{Kind: EventNavigateUp})
	require.NoError(t, err)
	require.Equal(t, 0, u.Session.Selected)

	u, err = e.Handle(ctx, Event{Kind: EventCommit})
	require.NoError(t, err)
	require.Equal(t, "^note", u.Text)

	u, err = e.Handle(ctx, Event{Kind: EventCancel})
	require.NoError(t, err)
	require.Nil(t, u.Session)

	_, err = e.Handle(ctx, Event{Kind: EventKind(42)})
	require.Error(t, err)
}

func TestEngine_PublishesUpdates(t *testing.T) {
	broker := pubsub.NewBroker[Update]()
	e := newTestEngine(WithBroker(broker))
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := e.Subscribe(ctx)

	_, err := e.OnTextChanged(ctx, ":t", 2)
	require.NoError(t, err)
	e.Navigate(ctx, Down)
	e.Cancel(ctx)

	want := []pubsub.EventType{pubsub.SessionOpened, pubsub.SessionUpdated, pubsub.SessionClosed}
	for _, typ := range want {
		select {
		case ev := <-ch:
			require.Equal(t, typ, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for update")
		}
	}
}

func TestEngine_TracesTurns(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	e := newTestEngine(WithTracer(provider.Tracer("test")))
	ctx := context.Background()

	_, err := e.OnTextChanged(ctx, ":role #adm", 10)
	require.NoError(t, err)
	_, ok := e.Commit(ctx)
	require.True(t, ok)

	var spanNames []string
	for _, s := range recorder.Ended() {
		spanNames = append(spanNames, s.Name())
	}
	require.ElementsMatch(t, []string{"engine.text_changed", "engine.commit"}, spanNames)
}

func TestEngine_SessionSnapshotIsIsolated(t *testing.T) {
	e := newTestEngine()
	_, err := e.OnTextChanged(context.Background(), ":t", 2)
	require.NoError(t, err)

	snap := e.Session()
	snap.Navigate(Down)
	require.Equal(t, 0, e.Session().Selected)
}

// === Property-Based Tests ===

func TestEngine_PropertyBased_CommitLandsAfterCandidate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`([a-z :#]{0,10}\n)?`).Draw(t, "prefix")
		key := rapid.SampledFrom([]string{":title", ":role"}).Draw(t, "key")
		partial := rapid.SampledFrom([]string{"a", "ad", "adm", "au"}).Draw(t, "partial")
		suffix := rapid.StringMatching(`(\n[a-z ]{0,10})?`).Draw(t, "suffix")

		text := prefix + key + " #" + partial + suffix
		cursor := len(prefix) + len(key) + 2 + len(partial)

		e := newTestEngine()
		u, err := e.OnTextChanged(context.Background(), text, cursor)
		require.NoError(t, err)
		require.NotNil(t, u.Session)

		steps := rapid.IntRange(0, 5).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			e.Navigate(context.Background(), Down)
		}
		chosen, _ := e.Session().Current()

		u, ok := e.Commit(context.Background())
		require.True(t, ok)
		require.Equal(t, chosen.Name, u.Text[u.Cursor-len(chosen.Name):u.Cursor])
		require.Equal(t, suffix, u.Text[u.Cursor:])

		got := zd.Classify(u.Text, u.Cursor)
		require.NotEqual(t, zd.KindKey, got.Kind)
	})
}
