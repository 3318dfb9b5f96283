// Package storage elige el backend de persistencia (PostgreSQL o memoria) y el de tokens revocados.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-pos/internal/application/auth"
	"github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/warehouse-pos/internal/infrastructure/redis"
	"github.com/jhoicas/warehouse-pos/pkg/config"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

// Backend repositorios listos para los casos de uso.
type Backend struct {
	Tx         inventory.TxRunner
	Repos      repository.TxRepos
	Categories repository.CategoryRepository
	Sections   repository.SectionRepository
	Blocklist  auth.TokenBlocklist

	closers []func()
}

// Close libera pool y cliente Redis en orden inverso.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Open conecta según cfg.App.Storage y cfg.Redis.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	b := &Backend{}

	if cfg.App.InMemory() {
		store := memory.New()
		b.Tx = store
		b.Repos = store.Repos()
		b.Categories = store.Categories()
		b.Sections = store.Sections()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		b.Tx = postgres.NewTxRunner(pool)
		b.Repos = postgres.Repos(pool)
		b.Categories = postgres.NewCategoryRepository(pool)
		b.Sections = postgres.NewSectionRepository(pool)
	}

	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		b.closers = append(b.closers, func() { _ = rdb.Close() })
		b.Blocklist = infraredis.NewBlocklist(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("tokens revocados en Redis")
	} else {
		b.Blocklist = memory.NewBlocklist()
	}
	return b, nil
}
