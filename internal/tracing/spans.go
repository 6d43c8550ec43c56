package tracing

// Span attribute keys.
const (
	AttrEventType      = "editor.event"
	AttrCursor         = "buffer.cursor"
	AttrTextLength     = "buffer.length"
	AttrTokenKind      = "token.kind"
	AttrTokenStart     = "token.start"
	AttrTokenQuery     = "token.query"
	AttrCandidateCount = "completion.candidates"
	AttrIndex          = "completion.index"
	AttrSessionID      = "session.id"
	AttrSelected       = "session.selected"
)

// Span names.
const (
	SpanPrefixEngine = "engine."
	SpanProvide      = "provider.lookup"
	SpanPreview      = "preview.render"
)

// Span event names.
const (
	EventSessionOpened          = "session.opened"
	EventSessionClosed          = "session.closed"
	EventSessionCommitted       = "session.committed"
	EventClassificationRejected = "classification.rejected"
	EventIndexFailed            = "index.failed"
)
