// Package redis lista de tokens revocados sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/warehouse-pos/internal/application/auth"
	"github.com/jhoicas/warehouse-pos/pkg/config"
)

const keyPrefix = "auth:revoked:"

var _ auth.TokenBlocklist = (*Blocklist)(nil)

// Blocklist guarda un key por jti con TTL hasta el vencimiento del token.
type Blocklist struct {
	rdb *redis.Client
	now func() time.Time
}

// NewClient abre la conexión y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewBlocklist construye la lista sobre un cliente ya conectado.
func NewBlocklist(rdb *redis.Client) *Blocklist {
	return &Blocklist{rdb: rdb, now: time.Now}
}

// Revoke marca el jti como revocado. Un token ya vencido no necesita registro.
func (b *Blocklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := ttlUntil(b.now(), until)
	if ttl <= 0 {
		return nil
	}
	if err := b.rdb.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (b *Blocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := b.rdb.Get(ctx, keyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return true, nil
}

// ttlUntil redondea hacia arriba al segundo; Redis no acepta TTL menores a 1ms.
func ttlUntil(now, until time.Time) time.Duration {
	d := until.Sub(now)
	if d <= 0 {
		return 0
	}
	return d.Truncate(time.Second) + time.Second
}
