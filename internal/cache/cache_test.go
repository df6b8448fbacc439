package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache(1024)
	defer mc.Close()

	require.NoError(t, mc.Set("k", "<html>8 900 555-66-77</html>", time.Minute))

	got, ok := mc.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "<html>8 900 555-66-77</html>", got)

	_, ok = mc.Get("missing")
	assert.False(t, ok)

	stats := mc.Stats()
	assert.Equal(t, uint64(1), stats["hits"])
	assert.Equal(t, uint64(1), stats["misses"])
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc := NewMemoryCache(1024)
	defer mc.Close()

	require.NoError(t, mc.Set("k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok := mc.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	// each entry is 1 (key) + 40 (source) bytes; room for two
	mc := NewMemoryCache(90)
	defer mc.Close()

	src := strings.Repeat("x", 40)
	require.NoError(t, mc.Set("a", src, time.Minute))
	require.NoError(t, mc.Set("b", src, time.Minute))

	_, ok := mc.Get("a")
	require.True(t, ok)

	require.NoError(t, mc.Set("c", src, time.Minute))

	_, ok = mc.Get("b")
	assert.False(t, ok, "b was least recently used and should be evicted")
	_, ok = mc.Get("a")
	assert.True(t, ok)
	_, ok = mc.Get("c")
	assert.True(t, ok)
}

func TestMemoryCache_OverwriteAndDelete(t *testing.T) {
	mc := NewMemoryCache(1024)
	defer mc.Close()

	require.NoError(t, mc.Set("k", "old", time.Minute))
	require.NoError(t, mc.Set("k", "new", time.Minute))
	assert.Equal(t, 1, mc.Len())

	got, _ := mc.Get("k")
	assert.Equal(t, "new", got)

	require.NoError(t, mc.Delete("k"))
	require.NoError(t, mc.Delete("k"))
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCache_RejectsOversizedEntry(t *testing.T) {
	mc := NewMemoryCache(8)
	defer mc.Close()

	assert.Error(t, mc.Set("k", strings.Repeat("x", 64), time.Minute))
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "https://hands.ru/company/about::#btn", KeyFor("https://hands.ru/company/about", "#btn"))
	assert.Equal(t, "https://hands.ru", KeyFor("https://hands.ru", ""))
}
