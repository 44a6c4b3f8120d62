package fplapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func testClient(t *testing.T, srv *httptest.Server, maxRetries int) *Client {
	t.Helper()
	c := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	})
	// drop the backoff for tests
	c.retry.BaseDelay = time.Millisecond
	c.retry.MaxDelay = time.Millisecond
	return c
}

func TestNewClientInstrumentsTransport(t *testing.T) {
	c := NewClient(ClientConfig{})
	_, ok := c.httpClient.Transport.(*otelhttp.Transport)
	assert.True(t, ok, "transport not traced")

	// an already-wrapped client is left alone
	again := NewClient(ClientConfig{HTTPClient: c.httpClient})
	assert.Same(t, c.httpClient.Transport, again.httpClient.Transport)
}

func TestFetchBootstrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bootstrap-static/", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"elements":[{"id":1}]}`))
	}))
	defer srv.Close()

	body, err := testClient(t, srv, 0).FetchBootstrap(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"elements":[{"id":1}]}`, string(body))
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	body, err := testClient(t, srv, 2).FetchFixtures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`not here`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv, 3).FetchBootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRejectsInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv, 0).FetchBootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestFetchExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(t, srv, 2).FetchFixtures(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}
