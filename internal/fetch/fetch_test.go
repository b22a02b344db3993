package fetch

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedFetcher(t *testing.T) *DocumentFetcher {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return NewDocumentFetcherWithClient(client)
}

func TestFetch_ReturnsBody(t *testing.T) {
	f := newMockedFetcher(t)

	httpmock.RegisterResponder("GET", "https://docs.example.com/order-form.pdf",
		httpmock.NewBytesResponder(200, []byte("%PDF-1.4 content")))

	content, err := f.Fetch(context.Background(), "https://docs.example.com/order-form.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 content"), content)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	f := newMockedFetcher(t)

	httpmock.RegisterResponder("GET", "https://docs.example.com/missing.pdf",
		httpmock.NewStringResponder(404, "not found"))

	_, err := f.Fetch(context.Background(), "https://docs.example.com/missing.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestFetch_TransportError(t *testing.T) {
	f := newMockedFetcher(t)

	httpmock.RegisterResponder("GET", "https://docs.example.com/broken.pdf",
		httpmock.NewErrorResponder(assert.AnError))

	_, err := f.Fetch(context.Background(), "https://docs.example.com/broken.pdf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
}
