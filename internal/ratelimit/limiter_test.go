package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_PerHostBuckets(t *testing.T) {
	dl := NewDomainLimiter(1, 1)

	assert.True(t, dl.Allow("https://a.example/one"))
	assert.False(t, dl.Allow("https://a.example/two"), "second request to the same host exceeds burst")
	assert.True(t, dl.Allow("https://b.example/one"), "other hosts have their own bucket")
	assert.Equal(t, 2, dl.Hosts())
}

func TestDomainLimiter_UnlimitedWhenRateNotPositive(t *testing.T) {
	dl := NewDomainLimiter(0, 0)

	for i := 0; i < 100; i++ {
		require.True(t, dl.Allow("https://a.example/"))
	}
}

func TestDomainLimiter_WaitHonoursContext(t *testing.T) {
	dl := NewDomainLimiter(0.01, 1)
	require.NoError(t, dl.Wait(context.Background(), "https://a.example/"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, dl.Wait(ctx, "https://a.example/"))
}

func TestDomainLimiter_InvalidURLPassesThrough(t *testing.T) {
	dl := NewDomainLimiter(1, 1)

	assert.True(t, dl.Allow("://bad"))
	assert.NoError(t, dl.Wait(context.Background(), "://bad"))
}
