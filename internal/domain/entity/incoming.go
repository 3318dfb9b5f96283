package entity

import "time"

// Incoming ingreso de mercancía a una bodega. Suma Quantity al stock de (WarehouseID, ProductID).
type Incoming struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int64
	Date        time.Time
	CreatedBy   string
}

// IncomingView ingreso con nombres para listados.
type IncomingView struct {
	Incoming
	ProductName   string
	WarehouseName string
}
