package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	s := NewRedisStore(rdb)
	key := "gconvert:test:" + time.Now().Format(time.RFC3339Nano)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, key, []byte("v"), time.Minute))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
