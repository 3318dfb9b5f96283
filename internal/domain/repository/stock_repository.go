package repository

import (
	"context"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
)

// StockFilter filtros del listado de stock.
type StockFilter struct {
	WarehouseID string
	ProductID   string
	Limit       int
	Offset      int
}

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// LockOrCreate y Save se usan dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// LockOrCreate crea la fila con 0 si no existe y la bloquea hasta el fin de la transacción.
	LockOrCreate(ctx context.Context, key inventory.StockKey) (*entity.Stock, error)
	Save(ctx context.Context, s *entity.Stock) error
	// Get devuelve cantidad 0 si la fila no existe.
	Get(ctx context.Context, key inventory.StockKey) (*entity.Stock, error)
	List(ctx context.Context, f StockFilter) ([]*entity.StockView, error)
	// QuantitiesByWarehouse mapa product_id -> cantidad en la bodega.
	QuantitiesByWarehouse(ctx context.Context, warehouseID string) (map[string]int64, error)
}
