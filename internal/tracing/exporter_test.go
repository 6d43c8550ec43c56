package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should be created with parent dirs")
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_AppendsToExistingFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"existing": "data"}`+"\n"), 0644))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	stub := tracetest.SpanStub{
		Name:      "engine.text_changed",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Millisecond),
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	file, err := os.Open(tracePath)
	require.NoError(t, err)
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines++
	}
	require.Equal(t, 2, lines, "file should have original line plus new span")
}

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var out []SpanRecord
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var record SpanRecord
		require.NoError(t, decoder.Decode(&record))
		out = append(out, record)
	}
	return out
}

func TestFileExporter_LiftsEngineAttributes(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	start := time.Now()
	stub := tracetest.SpanStub{
		Name:      SpanPrefixEngine + "commit",
		SpanKind:  trace.SpanKindInternal,
		StartTime: start,
		EndTime:   start.Add(2 * time.Millisecond),
		Status:    sdktrace.Status{Code: codes.Ok},
		Attributes: []attribute.KeyValue{
			attribute.String(AttrEventType, "commit"),
			attribute.Int(AttrCursor, 10),
			attribute.Int(AttrTextLength, 10),
			attribute.String(AttrTokenKind, "symbol"),
			attribute.Int(AttrTokenStart, 6),
			attribute.Int(AttrCandidateCount, 2),
			attribute.Int(AttrSelected, 0),
			attribute.String("host", "tui"),
		},
		Events: []sdktrace.Event{
			{
				Name: EventSessionCommitted,
				Time: start.Add(time.Millisecond),
				Attributes: []attribute.KeyValue{
					attribute.String(AttrSessionID, "s-1"),
					attribute.String("name", "#admin"),
				},
			},
		},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 1)
	record := records[0]

	require.Equal(t, "engine.commit", record.Name)
	require.False(t, record.Failed)
	require.InDelta(t, 2.0, record.DurationMs, 0.001)
	require.Equal(t, "commit", record.Event)
	require.Equal(t, 10, *record.Cursor)
	require.Equal(t, 10, *record.TextLength)
	require.Equal(t, "symbol", record.TokenKind)
	require.Equal(t, 6, *record.TokenStart)
	require.Equal(t, 2, *record.Candidates)
	require.Equal(t, 0, *record.Selected)
	require.Equal(t, "s-1", record.SessionID, "session id is lifted from the commit event")
	require.Equal(t, map[string]any{"host": "tui"}, record.Extra)

	require.Len(t, record.Events, 1)
	require.Equal(t, EventSessionCommitted, record.Events[0].Name)
	require.InDelta(t, 1.0, record.Events[0].Offset, 0.001)
	require.Equal(t, map[string]any{"name": "#admin"}, record.Events[0].Extra)
}

func TestFileExporter_ProviderSpan(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	stub := tracetest.SpanStub{
		Name: SpanProvide,
		Attributes: []attribute.KeyValue{
			attribute.String(AttrIndex, "icons"),
			attribute.String(AttrTokenQuery, "ho"),
		},
		Status: sdktrace.Status{Code: codes.Error, Description: "index unavailable"},
		Events: []sdktrace.Event{{Name: EventIndexFailed}},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 1)
	record := records[0]

	require.Equal(t, "icons", record.Index)
	require.Equal(t, "ho", record.Query)
	require.True(t, record.Failed)
	require.Equal(t, "index unavailable", record.Error)
	require.Nil(t, record.Cursor, "absent attributes stay out of the record")
	require.Empty(t, record.SessionID)
	require.Nil(t, record.Extra)
	require.Equal(t, EventIndexFailed, record.Events[0].Name)
}

func TestFileExporter_ExportAfterShutdownFails(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late"}
	require.Error(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
}

func TestFileExporter_ThreadSafe(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				stub := tracetest.SpanStub{
					Name:       "engine.navigate",
					Attributes: []attribute.KeyValue{attribute.Int(AttrCursor, worker)},
				}
				_ = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, exporter.Shutdown(context.Background()))

	require.Len(t, readRecords(t, tracePath), 400)
}
