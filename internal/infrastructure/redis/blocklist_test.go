package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/pkg/config"
)

func TestTTLUntil(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Duration(0), ttlUntil(now, now))
	assert.Equal(t, time.Duration(0), ttlUntil(now, now.Add(-time.Minute)))
	assert.Equal(t, time.Second, ttlUntil(now, now.Add(10*time.Millisecond)))
	assert.Equal(t, 61*time.Second, ttlUntil(now, now.Add(time.Minute)))
}

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/redis/
func TestBlocklist_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	bl := NewBlocklist(rdb)
	jti := uuid.NewString()

	revoked, err := bl.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, jti, time.Now().Add(time.Minute)))
	revoked, err = bl.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := rdb.TTL(ctx, keyPrefix+jti).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 61*time.Second)

	// token vencido: no se registra
	old := uuid.NewString()
	require.NoError(t, bl.Revoke(ctx, old, time.Now().Add(-time.Second)))
	revoked, err = bl.IsRevoked(ctx, old)
	require.NoError(t, err)
	assert.False(t, revoked)
}
