package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopDedupNeverReportsDuplicates(t *testing.T) {
	var d NopDedup
	ctx := context.Background()

	require.NoError(t, d.Mark(ctx, "CG-2024-001234:transit:1"))
	dup, err := d.IsDuplicate(ctx, "CG-2024-001234:transit:1")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestDedupCheckerDefaultsTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	assert.Equal(t, DefaultDedupTTL, NewDedupChecker(client, 0).ttl)
	assert.Equal(t, 5*time.Minute, NewDedupChecker(client, 5*time.Minute).ttl)
}

func TestDedupCheckerSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	d := NewDedupChecker(client, time.Minute)
	_, err := d.IsDuplicate(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, d.Mark(context.Background(), "k"))
}
