package cache

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathCache_SetGet(t *testing.T) {
	c := New()

	_, ok := c.Get("a,b")
	assert.False(t, ok)

	c.Set("a,b", "value")
	v, ok := c.Get("a,b")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	c.Set("a,b", "other")
	v, _ = c.Get("a,b")
	assert.Equal(t, "other", v)
	assert.Equal(t, 1, c.Len())
}

func TestPathCache_ZeroValuesAreHits(t *testing.T) {
	c := New()
	c.Set("zero", 0.0)
	c.Set("false", false)
	c.Set("nil", nil)
	c.Set("empty", "")

	for _, key := range []string{"zero", "false", "nil", "empty"} {
		_, ok := c.Get(key)
		if !ok {
			t.Errorf("expected %q to be cached", key)
		}
	}
}

func TestPathCache_DeleteAndClear(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Delete("a")
	c.Delete("missing")
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestPathCache_Concurrent(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := strconv.Itoa(i % 10)
			c.Set(key, i)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, c.Len())
}

func TestShared(t *testing.T) {
	t.Cleanup(Shared.Clear)

	Shared.Set("shared,key", "v")
	v, ok := Shared.Get("shared,key")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
