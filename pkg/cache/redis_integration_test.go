package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRedisCacheIntegration runs the Store contract against a live Redis.
func TestRedisCacheIntegration(t *testing.T) {
	if os.Getenv("RUN_REDIS_INTEGRATION") != "true" {
		t.Skip("set RUN_REDIS_INTEGRATION=true to run this integration test")
	}

	for _, path := range []string{".env", "../.env", "../../.env"} {
		_ = godotenv.Overload(path)
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Fatal("REDIS_ADDR is required")
	}

	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer rdb.Close()

	c := NewRedisCache(rdb)
	ns := fmt.Sprintf("arto_test_%d", time.Now().UnixNano())

	_, err = c.Get(ctx, ns, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, ns, "k", "v", time.Minute))
	val, err := c.Get(ctx, ns, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	cnt, err := c.IncrWithExpire(ctx, ns, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	ttl, err := c.GetTTL(ctx, ns, "counter")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Delete(ctx, ns, "k"))
	require.NoError(t, c.Delete(ctx, ns, "counter"))
}
