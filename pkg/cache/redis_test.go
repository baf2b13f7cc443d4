package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRedisClientJSONRoundTrip(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	var got payload
	hit, err := c.GetJSON(ctx, "products:list:x", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "products:list:x", payload{Name: "tee", Count: 2}, time.Minute))

	hit, err = c.GetJSON(ctx, "products:list:x", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "tee", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	hit, err = c.GetJSON(ctx, "products:list:x", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisClientDeletePattern(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "products:list:a", 1, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "products:list:b", 2, time.Minute))
	require.NoError(t, c.SetJSON(ctx, "drops:slug:x", 3, time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "products:list:*"))

	assert.False(t, mr.Exists("products:list:a"))
	assert.False(t, mr.Exists("products:list:b"))
	assert.True(t, mr.Exists("drops:slug:x"))
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(&Config{Addr: addr})
	assert.Error(t, err)
}
