package resultcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type key struct {
	name string
	seq  string
}

func TestLRUCache(t *testing.T) {
	c, err := NewLRUCache[key, []string](2)
	require.NoError(t, err)

	k1 := key{name: "org", seq: "1"}
	_, ok := c.Get(k1)
	assert.False(t, ok)

	c.Add(k1, []string{"a"})
	v, ok := c.Get(k1)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	c.Add(key{name: "org", seq: "2"}, nil)
	c.Add(key{name: "org", seq: "3"}, nil)
	assert.LessOrEqual(t, c.Len(), 2)

	c.Purge()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get(k1)
	assert.False(t, ok)
}

func TestNewLRUCacheInvalidSize(t *testing.T) {
	_, err := NewLRUCache[key, int](0)
	assert.Error(t, err)
}
