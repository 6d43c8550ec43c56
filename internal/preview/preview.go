// Package preview renders the document for the preview pane. Requests are
// debounced until typing pauses, at most one render runs at a time, and only
// the newest document's result is delivered.
package preview

import (
	"context"
	"strings"

	"github.com/zjrosen/zenedit/internal/zd"
)

// Renderer turns the raw document text into preview output.
type Renderer interface {
	Render(ctx context.Context, text string) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, text string) (string, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Local renders in-process with the highlighter.
type Local struct {
	// HTML selects escaped HTML output; otherwise ANSI for the terminal.
	HTML bool
}

// Render returns the highlighted document.
func (l Local) Render(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !l.HTML {
		return zd.Render(text), nil
	}

	var b strings.Builder
	b.WriteString(`<pre class="zd">`)
	b.WriteString(zd.RenderHTML(text))
	b.WriteString(`</pre>`)
	return b.String(), nil
}
