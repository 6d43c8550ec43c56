package tracing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errExporterClosed = errors.New("trace exporter is shut down")

// FileExporter appends one SpanRecord per line to a JSONL file.
// It implements sdktrace.SpanExporter.
type FileExporter struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewFileExporter opens path for appending, creating it and its parent
// directories as needed.
func NewFileExporter(path string) (*FileExporter, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path is cleaned above
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileExporter{f: f, enc: json.NewEncoder(f)}, nil
}

// ExportSpans appends spans to the file.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.f == nil {
		return errExporterClosed
	}
	for _, span := range spans {
		if err := e.enc.Encode(recordOf(span)); err != nil {
			return fmt.Errorf("encode span %s: %w", span.Name(), err)
		}
	}
	return nil
}

// Shutdown closes the file. Further exports fail.
func (e *FileExporter) Shutdown(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.f == nil {
		return nil
	}
	err := e.f.Close()
	e.f = nil
	return err
}

// SpanRecord is the JSON line written for each span. The editor's own
// attributes are lifted into typed fields; anything else stays in Extra.
type SpanRecord struct {
	TraceID    string  `json:"trace_id"`
	SpanID     string  `json:"span_id"`
	ParentID   string  `json:"parent_id,omitempty"`
	Name       string  `json:"name"`
	Start      string  `json:"start"`
	DurationMs float64 `json:"duration_ms"`
	Failed     bool    `json:"failed,omitempty"`
	Error      string  `json:"error,omitempty"`

	// Engine input.
	Event      string `json:"event,omitempty"`
	Cursor     *int   `json:"cursor,omitempty"`
	TextLength *int   `json:"text_length,omitempty"`

	// Classified token and lookup.
	TokenKind  string `json:"token_kind,omitempty"`
	TokenStart *int   `json:"token_start,omitempty"`
	Query      string `json:"query,omitempty"`
	Index      string `json:"index,omitempty"`
	Candidates *int   `json:"candidates,omitempty"`

	// Session state. SessionID also comes from session events.
	SessionID string `json:"session_id,omitempty"`
	Selected  *int   `json:"selected,omitempty"`

	Events []EventRecord  `json:"events,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// EventRecord is a span event: session transitions, rejected
// classifications and index failures.
type EventRecord struct {
	Name   string         `json:"name"`
	Offset float64        `json:"offset_ms"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func recordOf(span sdktrace.ReadOnlySpan) SpanRecord {
	sc := span.SpanContext()
	start := span.StartTime()
	r := SpanRecord{
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		Name:       span.Name(),
		Start:      start.Format(time.RFC3339Nano),
		DurationMs: millis(span.EndTime().Sub(start)),
	}
	if p := span.Parent(); p.IsValid() {
		r.ParentID = p.SpanID().String()
	}
	if st := span.Status(); st.Code == codes.Error {
		r.Failed = true
		r.Error = st.Description
	}

	for _, kv := range span.Attributes() {
		if !r.lift(kv) {
			r.Extra = extra(r.Extra, kv)
		}
	}

	for _, evt := range span.Events() {
		er := EventRecord{Name: evt.Name, Offset: millis(evt.Time.Sub(start))}
		for _, kv := range evt.Attributes {
			if string(kv.Key) == AttrSessionID {
				if r.SessionID == "" {
					r.SessionID = kv.Value.AsString()
				}
				continue
			}
			er.Extra = extra(er.Extra, kv)
		}
		r.Events = append(r.Events, er)
	}
	return r
}

// lift copies a known editor attribute into its field.
func (r *SpanRecord) lift(kv attribute.KeyValue) bool {
	v := kv.Value
	switch string(kv.Key) {
	case AttrEventType:
		r.Event = v.AsString()
	case AttrCursor:
		r.Cursor = intPtr(v)
	case AttrTextLength:
		r.TextLength = intPtr(v)
	case AttrTokenKind:
		r.TokenKind = v.AsString()
	case AttrTokenStart:
		r.TokenStart = intPtr(v)
	case AttrTokenQuery:
		r.Query = v.AsString()
	case AttrIndex:
		r.Index = v.AsString()
	case AttrCandidateCount:
		r.Candidates = intPtr(v)
	case AttrSessionID:
		r.SessionID = v.AsString()
	case AttrSelected:
		r.Selected = intPtr(v)
	default:
		return false
	}
	return true
}

func intPtr(v attribute.Value) *int {
	n := int(v.AsInt64())
	return &n
}

func extra(m map[string]any, kv attribute.KeyValue) map[string]any {
	if m == nil {
		m = make(map[string]any)
	}
	m[string(kv.Key)] = kv.Value.AsInterface()
	return m
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
