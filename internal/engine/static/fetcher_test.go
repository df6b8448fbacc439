package static

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/law-makers/phonecrawl/internal/engine"
	"github.com/law-makers/phonecrawl/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(headers map[string]string) *Fetcher {
	return New(
		&http.Client{Timeout: 5 * time.Second},
		ratelimit.NewDomainLimiter(0, 0),
		"TestFetcher/1.0",
		headers,
	)
}

func TestFetcher_Fetch_BasicHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<html><body><div class="phone">8 (495) 123-45-67</div></body></html>`))
	}))
	defer server.Close()

	body, err := newTestFetcher(nil).Fetch(context.Background(), server.URL+"/contacts")

	require.NoError(t, err)
	assert.Contains(t, body, "8 (495) 123-45-67")
}

func TestFetcher_Fetch_SendsHeaders(t *testing.T) {
	var gotUA, gotCustom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Custom-Header")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := newTestFetcher(map[string]string{"X-Custom-Header": "TestValue"}).
		Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "TestFetcher/1.0", gotUA)
	assert.Equal(t, "TestValue", gotCustom)
}

func TestFetcher_Fetch_DecodesWindows1251(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		// "Тел" in cp1251
		w.Write([]byte{0xD2, 0xE5, 0xEB})
	}))
	defer server.Close()

	body, err := newTestFetcher(nil).Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Тел", body)
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher(nil).Fetch(context.Background(), server.URL+"/missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrFetch))

	var fe *engine.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestFetcher_Fetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFetcher(nil).Fetch(context.Background(), url)

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrFetch))
}

func TestFetcher_Fetch_InvalidURL(t *testing.T) {
	_, err := newTestFetcher(nil).Fetch(context.Background(), "http://bad host/")

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidURL))
}

func TestFetcher_Name(t *testing.T) {
	assert.Equal(t, "StaticFetcher", newTestFetcher(nil).Name())
}
