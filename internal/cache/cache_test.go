package cache_test

import (
	"context"
	"testing"
	"time"

	"freshcart/internal/cache"
	"freshcart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()

	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)

	product := &models.Product{ID: "p1", Name: "Milk", Price: 1.5, Reviews: []models.Review{{UserID: "u1", Rating: 4}}}
	c.Set(ctx, product)

	cached, ok := c.Get(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, "Milk", cached.Name)
	require.Len(t, cached.Reviews, 1)

	cached.Name = "changed"
	again, _ := c.Get(ctx, "p1")
	assert.Equal(t, "Milk", again.Name, "cached copies must not alias")

	c.Invalidate(ctx, "p1")
	_, ok = c.Get(ctx, "p1")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(10 * time.Millisecond)
	defer c.Close()

	c.Set(ctx, &models.Product{ID: "p1"})
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	c, err := cache.New(ctx, cache.Config{Driver: "none"})
	require.NoError(t, err)
	c.Set(ctx, &models.Product{ID: "p1"})
	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)

	c, err = cache.New(ctx, cache.Config{Driver: "memory", TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, c)
	require.NoError(t, c.Close())

	_, err = cache.New(ctx, cache.Config{Driver: "memcached"})
	assert.Error(t, err)
}
