package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes bounds how much of a preview response is read.
const maxResponseBytes = 4 << 20

// HTTP renders by POSTing the raw document to a preview endpoint and using
// the response body as the rendered output.
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP returns an HTTP renderer with a per-request timeout.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Render posts text and returns the response body.
func (h *HTTP) Render(ctx context.Context, text string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("building preview request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("preview request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading preview response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("preview request: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}
