// Package fetcher retrieves raw listing documents over HTTP. It is the
// document-source boundary of the pipeline: one GET per run, no link
// following, no politeness machinery.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/gotender/internal/logger"
)

// maxDocumentBytes caps how much of a response body is read. Listing pages
// are small; anything larger is a misconfigured endpoint.
const maxDocumentBytes = 10 << 20

// Fetcher fetches raw markup for a configured endpoint.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    logger.Logger
}

// New constructs a Fetcher with a shared HTTP client bound to the given
// timeout.
func New(timeout time.Duration, userAgent string, log logger.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    log,
	}
}

// Fetch performs a single GET and returns the raw document text. Any
// transport failure or non-2xx status is an error; the caller treats it as
// fatal for the run.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	f.logger.Info("Fetching source document", logger.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	f.logger.Debug("Fetched document", logger.Int("bytes", len(body)))
	return string(body), nil
}
