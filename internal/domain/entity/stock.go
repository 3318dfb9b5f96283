package entity

import "time"

// Stock cantidad actual de un producto en una bodega. Único por (WarehouseID, ProductID);
// se crea con 0 en la primera mutación. Solo una venta puede dejarlo negativo.
type Stock struct {
	WarehouseID string
	ProductID   string
	Quantity    int64
	UpdatedAt   time.Time
}

// StockView fila de stock con nombres para listados.
type StockView struct {
	Stock
	WarehouseName string
	ProductName   string
	CategoryName  string
}
