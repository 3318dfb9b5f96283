package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de la venta: por product_id o por código de barras.
// Price vacío = precio de venta del producto.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"omitempty,uuid"`
	Barcode   string           `json:"barcode" validate:"omitempty,max=64"`
	Quantity  int64            `json:"quantity" validate:"gt=0"`
	Price     *decimal.Decimal `json:"price"`
}

// CheckoutRequest body para POST /api/sales.
type CheckoutRequest struct {
	WarehouseID    string            `json:"warehouse_id" validate:"omitempty,uuid"`
	PaymentMethod  string            `json:"payment_method" validate:"required,oneof=kaspi halyk cash mixed delayed"`
	CashAmount     decimal.Decimal   `json:"cash_amount"`
	HalykAmount    decimal.Decimal   `json:"halyk_amount"`
	KaspiAmount    decimal.Decimal   `json:"kaspi_amount"`
	CashGiven      decimal.Decimal   `json:"cash_given"`
	PaymentDetails string            `json:"payment_details" validate:"max=255"`
	Items          []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	ReceiptNumber  int64              `json:"receipt_number"`
	WarehouseID    string             `json:"warehouse_id"`
	WarehouseName  string             `json:"warehouse_name,omitempty"`
	SellerID       string             `json:"seller_id"`
	SellerUsername string             `json:"seller_username,omitempty"`
	PaymentMethod  string             `json:"payment_method"`
	CashAmount     decimal.Decimal    `json:"cash_amount"`
	HalykAmount    decimal.Decimal    `json:"halyk_amount"`
	KaspiAmount    decimal.Decimal    `json:"kaspi_amount"`
	CashGiven      decimal.Decimal    `json:"cash_given"`
	ChangeDue      decimal.Decimal    `json:"change_due"`
	PaymentDetails string             `json:"payment_details,omitempty"`
	Total          decimal.Decimal    `json:"total"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items"`
}

// OrderListResponse lista paginada de ventas con sus líneas.
type OrderListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// POSProduct producto en el catálogo de caja.
type POSProduct struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	LocalStock   int64           `json:"local_stock"`
	TotalStock   int64           `json:"total_stock"`
}

// POSCatalogResponse catálogo de caja de la bodega del cajero.
type POSCatalogResponse struct {
	WarehouseID string       `json:"warehouse_id,omitempty"`
	Products    []POSProduct `json:"products"`
}

// SalesReportQuery filtros del reporte de ventas.
type SalesReportQuery struct {
	StartDate   *time.Time
	EndDate     *time.Time
	WarehouseID string
}

// SalesReportRow una línea vendida en el reporte.
type SalesReportRow struct {
	Date          time.Time       `json:"date"`
	ReceiptNumber int64           `json:"receipt_number"`
	Warehouse     string          `json:"warehouse"`
	Product       string          `json:"product"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Profit        decimal.Decimal `json:"profit"`
}

// SalesReportStats totales del reporte. Los totales por método suman ventas, no líneas.
type SalesReportStats struct {
	TotalQty     int64           `json:"total_qty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	KaspiTotal   decimal.Decimal `json:"kaspi_total"`
	HalykTotal   decimal.Decimal `json:"halyk_total"`
	CashTotal    decimal.Decimal `json:"cash_total"`
	MixedTotal   decimal.Decimal `json:"mixed_total"`
	DelayedTotal decimal.Decimal `json:"delayed_total"`
	SalesCount   int             `json:"sales_count"`
}

// SalesReportResponse reporte completo.
type SalesReportResponse struct {
	Rows  []SalesReportRow `json:"rows"`
	Stats SalesReportStats `json:"stats"`
}
