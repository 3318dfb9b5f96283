package entity

import "time"

// Movement traslado entre bodegas: resta en origen y suma en destino. Origen ≠ destino.
type Movement struct {
	ID              string
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	Date            time.Time
	CreatedBy       string
}

// MovementView traslado con nombres para listados.
type MovementView struct {
	Movement
	ProductName       string
	FromWarehouseName string
	ToWarehouseName   string
}
