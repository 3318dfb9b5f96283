package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/inventory"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// AdjustStock aplica un único delta sobre (warehouseID, productID) dentro de la transacción del caller.
// Devuelve la fila resultante; con error la fila queda como estaba.
func AdjustStock(ctx context.Context, stocks repository.StockRepository, warehouseID, productID string, delta int64, allowNegative bool) (*entity.Stock, error) {
	key := inventory.StockKey{WarehouseID: warehouseID, ProductID: productID}
	rows, err := ApplyDeltas(ctx, stocks, inventory.Delta{Key: key, Amount: delta, AllowNegative: allowNegative})
	if err != nil {
		return nil, err
	}
	return rows[key], nil
}

// ApplyDeltas bloquea todas las filas tocadas en orden (bodega, producto) y luego aplica los deltas
// en el orden recibido. Si alguno falla no se persiste nada.
func ApplyDeltas(ctx context.Context, stocks repository.StockRepository, deltas ...inventory.Delta) (map[inventory.StockKey]*entity.Stock, error) {
	order := inventory.LockOrder(deltas)
	rows := make(map[inventory.StockKey]*entity.Stock, len(order))
	for _, key := range order {
		s, err := stocks.LockOrCreate(ctx, key)
		if err != nil {
			return nil, err
		}
		rows[key] = s
	}

	dirty := make(map[inventory.StockKey]bool, len(order))
	for _, d := range deltas {
		if d.Amount == 0 {
			continue
		}
		s := rows[d.Key]
		next, err := inventory.ApplyDelta(s.Quantity, d.Amount, d.AllowNegative)
		if err != nil {
			return nil, fmt.Errorf("bodega %s, producto %s: %w", d.Key.WarehouseID, d.Key.ProductID, err)
		}
		s.Quantity = next
		dirty[d.Key] = true
	}

	now := time.Now()
	for _, key := range order {
		if !dirty[key] {
			continue
		}
		s := rows[key]
		s.UpdatedAt = now
		if err := stocks.Save(ctx, s); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// NewActivity arma un registro de acción del actor.
func NewActivity(actor entity.Actor, action, entityType, entityID, details string) *entity.ActivityLog {
	return &entity.ActivityLog{
		ID:         uuid.New().String(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		UserID:     actor.UserID,
		EmployeeID: actor.EmployeeID,
		CreatedAt:  time.Now(),
	}
}

func operationFilter(actor entity.Actor, warehouseID string, from, to *time.Time, limit, offset int) repository.OperationFilter {
	return repository.OperationFilter{
		WarehouseID: actor.ScopeWarehouse(warehouseID),
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	}
}
