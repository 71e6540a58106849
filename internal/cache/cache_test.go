package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// unreachable points at a closed port so every call fails fast.
func unreachable() *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewFromRedis(rdb, zerolog.Nop())
}

func TestClient_FailsSafeWhenUnreachable(t *testing.T) {
	ctx := context.Background()
	c := unreachable()
	defer c.Close()

	assert.Error(t, c.Ping(ctx))
	assert.Nil(t, c.Get(ctx, "k"))
	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")
	c.DeletePrefix(ctx, ClubListPrefix)

	var out map[string]string
	assert.False(t, c.GetJSON(ctx, "k", &out))

	_, err := c.Incr(ctx, "k", time.Minute)
	assert.Error(t, err)
}

func TestClient_NilIsMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.Nil(t, c.Get(ctx, "k"))
	assert.NoError(t, c.Close())
	assert.Error(t, c.Ping(ctx))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "clubs:list:2:12", ClubListKey(2, 12))
	assert.Equal(t, "events:list:1:20:go meetup:2025-05-01", EventListKey(1, 20, " Go Meetup ", "2025-05-01"))
	assert.Equal(t, "weather:ankara", WeatherKey("Ankara"))
}
