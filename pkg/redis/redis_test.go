package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diaa1123/amz-qoder/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()

	cfg := &config.Config{
		Redis: config.RedisConfig{Enabled: false},
	}

	client, err := New(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)
	assert.False(t, client.Enabled())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "test")

	// When Redis is disabled, all requests are allowed
	allowed, remaining, err := limiter.Allow(context.Background(), TrendsRateLimit)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, TrendsRateLimit.Limit, remaining)
}

func TestCache_DisabledIsNoOp(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", map[string]string{"a": "b"}, 0))

	var dest map[string]string
	found, err := cache.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)

	require.NoError(t, cache.Delete(ctx, "k"))
}
