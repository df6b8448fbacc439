package dynamic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/law-makers/phonecrawl/internal/cache"
	"github.com/law-makers/phonecrawl/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const revealPage = `<!DOCTYPE html>
<html>
<head><title>Contacts</title></head>
<body>
	<footer>
		<div class="footer__block footer__block_phone">
			<button id="reveal" onclick="document.getElementById('num').innerText = ['8 900', '555-66-77'].join(' ')">Show phone</button>
			<span id="num"></span>
		</div>
	</footer>
</body>
</html>`

func requireChrome(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if FindChrome() == "" {
		t.Skip("Chrome not available")
	}
}

func TestRenderer_ServesFromCache(t *testing.T) {
	mc := cache.NewMemoryCache(1024)
	defer mc.Close()
	require.NoError(t, mc.Set(cache.KeyFor("https://hands.ru/company/about", "#reveal"), "<html>8 900 555-66-77</html>", time.Minute))

	r := New(Options{Cache: mc, Timeout: time.Second})

	html, err := r.Render(context.Background(), "https://hands.ru/company/about", "#reveal")

	require.NoError(t, err)
	assert.Equal(t, "<html>8 900 555-66-77</html>", html)
}

func TestRenderer_Name(t *testing.T) {
	assert.Equal(t, "ChromeRenderer", New(Options{}).Name())
}

func TestRenderer_Render_ClickRevealsPhone(t *testing.T) {
	requireChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(revealPage))
	}))
	defer server.Close()

	mc := cache.NewMemoryCache(1 << 20)
	defer mc.Close()

	r := New(Options{
		Allocator: AllocatorConfig{Headless: true},
		Timeout:   20 * time.Second,
		Settle:    100 * time.Millisecond,
		Cache:     mc,
		CacheTTL:  time.Minute,
	})

	require.NotContains(t, revealPage, "8 900 555-66-77", "phone must only appear after the click")

	html, err := r.Render(context.Background(), server.URL, "#reveal")

	require.NoError(t, err)
	assert.Contains(t, html, "8 900 555-66-77")
	assert.Equal(t, 1, mc.Len(), "rendered source should be cached")
}

func TestRenderer_Render_MissingSelector(t *testing.T) {
	requireChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>nothing here</body></html>`))
	}))
	defer server.Close()

	r := New(Options{Allocator: AllocatorConfig{Headless: true}, Timeout: 3 * time.Second})

	_, err := r.Render(context.Background(), server.URL, "#does-not-exist")

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrRender))
}

func TestRenderer_Render_WithPool(t *testing.T) {
	requireChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(revealPage))
	}))
	defer server.Close()

	pool := NewBrowserPool(1, AllocatorConfig{Headless: true})
	defer pool.Close()

	r := New(Options{Timeout: 20 * time.Second, Settle: 100 * time.Millisecond})
	r.SetBrowserPool(pool)

	for i := 0; i < 2; i++ {
		html, err := r.Render(context.Background(), server.URL, "#reveal")
		require.NoError(t, err)
		assert.Contains(t, html, "8 900 555-66-77")
	}
	assert.Equal(t, 1, pool.Available())
}

func TestBrowserPool_SizeClamp(t *testing.T) {
	assert.Equal(t, 1, NewBrowserPool(0, AllocatorConfig{}).Size())
	assert.Equal(t, MaxBrowserPoolSize, NewBrowserPool(50, AllocatorConfig{}).Size())
}

func TestBrowserPool_AcquireAfterClose(t *testing.T) {
	pool := NewBrowserPool(1, AllocatorConfig{})
	require.NoError(t, pool.Close())
	require.NoError(t, pool.Close())

	_, err := pool.Acquire(context.Background())
	assert.Error(t, err)
}
