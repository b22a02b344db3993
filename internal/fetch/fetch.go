package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnexpectedStatus is returned when the remote server responds with a
// non-2xx status code.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// DocumentFetcher downloads raw document content over HTTP.
type DocumentFetcher struct {
	client *http.Client
}

// NewDocumentFetcher creates a new DocumentFetcher. A zero timeout means
// no client-side bound on the download.
func NewDocumentFetcher(timeout time.Duration) *DocumentFetcher {
	return &DocumentFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// NewDocumentFetcherWithClient creates a DocumentFetcher using the given
// HTTP client.
func NewDocumentFetcherWithClient(client *http.Client) *DocumentFetcher {
	return &DocumentFetcher{client: client}
}

// Fetch downloads the document at url and returns its raw bytes.
func (f *DocumentFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d fetching %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}

	return content, nil
}
