package entity

import (
	"fmt"

	"github.com/jhoicas/warehouse-pos/internal/domain"
)

// Actor usuario autenticado que ejecuta una operación.
type Actor struct {
	UserID      string
	EmployeeID  string
	WarehouseID string
	IsSuperuser bool
}

// OperatingWarehouse resuelve la bodega sobre la que el actor puede mover stock.
// El superusuario debe indicarla; un empleado solo opera sobre la suya.
func (a Actor) OperatingWarehouse(requested string) (string, error) {
	if a.IsSuperuser {
		if requested == "" {
			return "", fmt.Errorf("%w: warehouse_id es requerido", domain.ErrInvalidInput)
		}
		return requested, nil
	}
	if a.WarehouseID == "" {
		return "", fmt.Errorf("%w: el empleado no tiene bodega asignada", domain.ErrForbidden)
	}
	if requested != "" && requested != a.WarehouseID {
		return "", fmt.Errorf("%w: bodega fuera de su alcance", domain.ErrForbidden)
	}
	return a.WarehouseID, nil
}

// ScopeWarehouse filtro de bodega para listados: el empleado con bodega solo ve la suya.
func (a Actor) ScopeWarehouse(requested string) string {
	if a.IsSuperuser || a.WarehouseID == "" {
		return requested
	}
	return a.WarehouseID
}

// CanManage indica si el actor administra personal de la bodega dada.
// Superusuario y empleado sin bodega no tienen restricción.
func (a Actor) CanManage(warehouseID string) bool {
	return a.IsSuperuser || a.WarehouseID == "" || a.WarehouseID == warehouseID
}
