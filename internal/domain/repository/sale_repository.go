package repository

import (
	"context"

	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y su numeración.
type SaleRepository interface {
	// NextReceiptNumber bloquea la secuencia hasta el fin de la transacción y devuelve max + 1.
	NextReceiptNumber(ctx context.Context) (int64, error)
	// Create inserta la venta con sus líneas. domain.ErrDuplicateReceipt si el número ya existe.
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.SaleView, error)
	List(ctx context.Context, f OperationFilter) ([]*entity.SaleView, error)
	// ReportRows una fila por línea vendida, ordenadas por fecha descendente.
	ReportRows(ctx context.Context, f OperationFilter) ([]entity.SalesReportRow, error)
}

// ActivityLogRepository registro de acciones.
type ActivityLogRepository interface {
	Create(ctx context.Context, l *entity.ActivityLog) error
	// List filtra por la bodega del empleado si warehouseID no está vacío.
	List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.ActivityLog, error)
}
