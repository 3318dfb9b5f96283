package entity

import "time"

// WarehouseCodePrefix prefijo de los códigos generados (WH-XXXXXX).
const WarehouseCodePrefix = "WH-"

// Warehouse representa una bodega o punto de venta donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Code      string
	CreatedAt time.Time
}

// WarehouseProfile datos operativos de la bodega; se crea junto con ella (1:1).
type WarehouseProfile struct {
	WarehouseID           string
	ManagerName           string
	ContactPhone          string
	Capacity              int
	TemperatureControlled bool
}

// WarehouseSummary bodega con su perfil y el stock total almacenado.
type WarehouseSummary struct {
	Warehouse
	Profile    WarehouseProfile
	TotalStock int64
}
