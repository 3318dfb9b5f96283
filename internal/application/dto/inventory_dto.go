package dto

import "time"

// IncomingRequest body para POST/PUT /api/incoming.
// WarehouseID vacío = bodega del empleado. Date vacío = ahora.
type IncomingRequest struct {
	ProductID   string     `json:"product_id" validate:"required,uuid"`
	WarehouseID string     `json:"warehouse_id" validate:"omitempty,uuid"`
	Quantity    int64      `json:"quantity" validate:"gt=0"`
	Date        *time.Time `json:"date"`
}

// IncomingBatchItem una línea del ingreso por lote.
type IncomingBatchItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
}

// IncomingBatchRequest varios productos a una misma bodega en una sola transacción.
type IncomingBatchRequest struct {
	WarehouseID string              `json:"warehouse_id" validate:"omitempty,uuid"`
	Date        *time.Time          `json:"date"`
	Items       []IncomingBatchItem `json:"items" validate:"required,min=1,dive"`
}

// IncomingResponse salida de un ingreso.
type IncomingResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	Quantity      int64     `json:"quantity"`
	Date          time.Time `json:"date"`
	CreatedBy     string    `json:"created_by,omitempty"`
}

// IncomingListResponse lista paginada de ingresos.
type IncomingListResponse struct {
	Items []IncomingResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementRequest body para POST/PUT /api/movements.
type MovementRequest struct {
	ProductID       string     `json:"product_id" validate:"required,uuid"`
	FromWarehouseID string     `json:"from_warehouse_id" validate:"omitempty,uuid"`
	ToWarehouseID   string     `json:"to_warehouse_id" validate:"required,uuid"`
	Quantity        int64      `json:"quantity" validate:"gt=0"`
	Date            *time.Time `json:"date"`
}

// MovementResponse salida de un traslado.
type MovementResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	ProductName       string    `json:"product_name,omitempty"`
	FromWarehouseID   string    `json:"from_warehouse_id"`
	FromWarehouseName string    `json:"from_warehouse_name,omitempty"`
	ToWarehouseID     string    `json:"to_warehouse_id"`
	ToWarehouseName   string    `json:"to_warehouse_name,omitempty"`
	Quantity          int64     `json:"quantity"`
	Date              time.Time `json:"date"`
	CreatedBy         string    `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de traslados.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockResponse una fila de stock.
type StockResponse struct {
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	CategoryName  string    `json:"category_name"`
	Quantity      int64     `json:"quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OperationQuery filtros de listados de operaciones (query string).
type OperationQuery struct {
	WarehouseID string
	StartDate   *time.Time
	EndDate     *time.Time
	Limit       int
	Offset      int
}
