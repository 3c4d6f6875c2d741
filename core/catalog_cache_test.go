package core

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestCache creates a miniredis server and returns a RedisCatalogCache.
func setupTestCache(t *testing.T) (*RedisCatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCatalogCache(client), mr
}

func TestCatalogCacheMiss(t *testing.T) {
	cache, _ := setupTestCache(t)

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCatalogCacheRoundtrip(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	products := []Product{
		{ID: 1, Name: "Laptop", Price: 1200, Description: "A powerful laptop", ImageURL: "/images/laptop.png"},
		{ID: 2, Name: "Headphones", Price: 150, Description: "Noise-cancelling headphones", ImageURL: "/images/headphones.jpg"},
	}

	require.NoError(t, cache.Set(ctx, products))
	assert.Greater(t, mr.TTL(catalogCacheKey), time.Duration(0))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestCatalogCacheInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []Product{{ID: 1, Name: "Laptop", Price: 1200}}))
	require.NoError(t, cache.Invalidate(ctx))

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCatalogCacheCorruptPayload(t *testing.T) {
	cache, mr := setupTestCache(t)

	mr.Set(catalogCacheKey, "{not json")
	_, err := cache.Get(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestCatalogCacheStoresJSON(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	products := []Product{{ID: 3, Name: "Coffee Maker", Price: 80, Description: "Brews great coffee"}}
	require.NoError(t, cache.Set(ctx, products))

	raw, err := mr.Get(catalogCacheKey)
	require.NoError(t, err)

	var decoded []Product
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, products, decoded)
}
