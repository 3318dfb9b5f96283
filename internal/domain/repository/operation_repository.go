package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

// OperationFilter filtros comunes de ingresos, traslados y ventas.
// WarehouseID limita a operaciones que tocan esa bodega. From/To son inclusivos por fecha.
type OperationFilter struct {
	WarehouseID string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// IncomingRepository define el puerto de persistencia para Incoming.
type IncomingRepository interface {
	Create(ctx context.Context, in *entity.Incoming) error
	// GetForUpdate bloquea el registro (SELECT FOR UPDATE). (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Incoming, error)
	Update(ctx context.Context, in *entity.Incoming) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f OperationFilter) ([]*entity.IncomingView, error)
}

// MovementRepository define el puerto de persistencia para Movement.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, m *entity.Movement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f OperationFilter) ([]*entity.MovementView, error)
}
