package entity

import "time"

// Cargos de empleado.
const (
	PositionAdmin       = "admin"
	PositionStorekeeper = "storekeeper"
	PositionCashier     = "cashier"
	PositionAccountant  = "accountant"
)

// Estados de empleado.
const (
	EmployeeActive  = "active"
	EmployeeBlocked = "blocked"
)

// Employee perfil laboral de un User: cargo, bodega asignada y secciones habilitadas.
// WarehouseID vacío significa sin bodega (no puede operar stock si no es superusuario).
type Employee struct {
	ID          string
	UserID      string
	FullName    string
	Position    string
	Status      string
	WarehouseID string
	Sections    []string
	CreatedAt   time.Time
}

// IsBlocked indica si el empleado tiene el acceso bloqueado.
func (e *Employee) IsBlocked() bool {
	return e.Status == EmployeeBlocked
}

var positionPresets = map[string][]string{
	PositionAdmin: {
		SectionCategories, SectionProducts, SectionWarehouses, SectionEmployees, SectionStocks,
		SectionOperations, SectionReports, SectionIncoming, SectionMovements, SectionSales,
	},
	PositionStorekeeper: {SectionIncoming, SectionMovements},
	PositionCashier:     {SectionSales, SectionStocks},
	PositionAccountant:  {SectionReports, SectionStocks},
}

// ValidPosition indica si el cargo existe.
func ValidPosition(p string) bool {
	_, ok := positionPresets[p]
	return ok
}

// PresetSections devuelve una copia de las secciones por defecto del cargo.
func PresetSections(position string) []string {
	preset := positionPresets[position]
	out := make([]string, len(preset))
	copy(out, preset)
	return out
}
