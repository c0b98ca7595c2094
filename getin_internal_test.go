package kvparser

import (
	"context"
	"testing"

	"github.com/gocrud/kvparser/logging"
	"github.com/gocrud/kvparser/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIn_CachedPathSkipsTree(t *testing.T) {
	client := memory.New(memory.Options{Entries: map[string]string{"a/b": "v"}})
	p, err := New(nil, WithClient(client), WithLogger(logging.Nop()))
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), []KeyDescriptor{{Key: "a/b"}})
	require.NoError(t, err)

	v, err := p.GetIn("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	// 替换成空树之后，已缓存的路径仍然命中
	p.values.Store(Values{})

	v, err = p.GetIn("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = p.GetIn("a")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "", cacheKey(nil))
	assert.Equal(t, "a", cacheKey([]string{"a"}))
	assert.Equal(t, "a,b,c", cacheKey([]string{"a", "b", "c"}))
	assert.Equal(t, cacheKey([]string{"a,b"}), cacheKey([]string{"a", "b"}))
}
