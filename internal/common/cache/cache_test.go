// internal/common/cache/cache_test.go
package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entsite/internal/common/config"
	"entsite/internal/common/logger"
)

func TestMemory_GetSet(t *testing.T) {
	c := NewMemory(4)
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "a", "http://example.com")
	v, ok := c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com", v)

	// A cached negative result is a hit with an empty value.
	c.Set(ctx, "b", "")
	v, ok = c.Get(ctx, "b")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestMemory_EvictsOldestAtCapacity(t *testing.T) {
	c := NewMemory(2)
	ctx := context.Background()

	c.Set(ctx, "first", "1")
	c.Set(ctx, "second", "2")
	c.Set(ctx, "third", "3")

	_, ok := c.Get(ctx, "first")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get(ctx, "second")
	assert.True(t, ok)
	_, ok = c.Get(ctx, "third")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemory_UpdateDoesNotGrow(t *testing.T) {
	c := NewMemory(2)
	ctx := context.Background()

	c.Set(ctx, "k", "old")
	c.Set(ctx, "k", "new")

	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Len())
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := NewMemory(64)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%32)
				c.Set(ctx, key, fmt.Sprintf("v-%d-%d", n, j))
				c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
}

func TestRedis_GetSet(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(config.RedisConfig{Address: mr.Addr()}, logger.NewTestLogger(t))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "corp\x00id1", "http://corp.example.com")
	v, ok := c.Get(ctx, "corp\x00id1")
	assert.True(t, ok)
	assert.Equal(t, "http://corp.example.com", v)

	// Negative result round-trips as an empty-string hit.
	c.Set(ctx, "nosite\x00id2", "")
	v, ok = c.Get(ctx, "nosite\x00id2")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestRedis_BackendDownDegradesToMiss(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(config.RedisConfig{Address: mr.Addr()}, logger.NewTestLogger(t))
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", "v")
	mr.Close()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "backend failure must read as a miss")
}
