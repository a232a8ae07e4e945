package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gotender/internal/fetcher"
	"github.com/jonesrussell/gotender/internal/logger"
)

func TestFetch_ReturnsDocumentAndIdentifiesItself(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>listing</body></html>"))
	}))
	defer srv.Close()

	f := fetcher.New(5*time.Second, "TenderNotifier/1.0", logger.NewNopLogger())

	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, body, "listing")
	assert.Equal(t, "TenderNotifier/1.0", gotUserAgent)
}

func TestFetch_NonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := fetcher.New(5*time.Second, "TenderNotifier/1.0", logger.NewNopLogger())

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetch_TimeoutIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := fetcher.New(20*time.Millisecond, "TenderNotifier/1.0", logger.NewNopLogger())

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := fetcher.New(5*time.Second, "TenderNotifier/1.0", logger.NewNopLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
}
