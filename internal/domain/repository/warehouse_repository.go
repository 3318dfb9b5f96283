package repository

import (
	"context"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas y su perfil.
type WarehouseRepository interface {
	// Create inserta la bodega y su perfil.
	Create(ctx context.Context, w *entity.Warehouse, profile *entity.WarehouseProfile) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetProfile(ctx context.Context, warehouseID string) (*entity.WarehouseProfile, error)
	Update(ctx context.Context, w *entity.Warehouse, profile *entity.WarehouseProfile) error
	List(ctx context.Context, limit, offset int) ([]*entity.WarehouseSummary, error)
}
