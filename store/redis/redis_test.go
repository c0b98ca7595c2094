package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	opts := NewDefaultOptions()
	assert.NoError(t, opts.Validate())

	opts.Addr = "" // 必填项缺失
	assert.Error(t, opts.Validate())

	opts = NewDefaultOptions()
	opts.DB = -1
	assert.Error(t, opts.Validate())

	opts = NewDefaultOptions()
	opts.DialTimeout = 0
	assert.Error(t, opts.Validate())
}

// 需要真实的 Redis：REDIS_ADDR=localhost:6379
func TestClient_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping integration test: REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := NewDefaultOptions()
	opts.Addr = addr
	client, err := New(ctx, opts)
	require.NoError(t, err)
	defer client.Close()

	key := "kvparser-test:" + t.Name()
	require.NoError(t, client.rdb.Set(ctx, key, "123.456", time.Minute).Err())
	defer client.rdb.Del(ctx, key)

	pair, err := client.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "123.456", pair.Value)

	pair, err = client.Get(ctx, key+"-missing")
	require.NoError(t, err)
	assert.Nil(t, pair)
}
