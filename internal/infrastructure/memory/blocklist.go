package memory

import (
	"context"
	"sync"
	"time"
)

// Blocklist tokens revocados en memoria del proceso; se usa cuando no hay Redis.
// Las entradas vencidas se purgan en cada Revoke.
type Blocklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewBlocklist lista vacía.
func NewBlocklist() *Blocklist {
	return &Blocklist{revoked: map[string]time.Time{}, now: time.Now}
}

func (b *Blocklist) Revoke(_ context.Context, jti string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	for k, exp := range b.revoked {
		if !exp.After(now) {
			delete(b.revoked, k)
		}
	}
	if until.After(now) {
		b.revoked[jti] = until
	}
	return nil
}

func (b *Blocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.revoked[jti]
	return ok && exp.After(b.now()), nil
}
