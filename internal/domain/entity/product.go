package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BarcodeLength longitud del código de barras generado cuando el producto no trae uno.
const BarcodeLength = 13

// Product representa un artículo del catálogo. Único por (Name, CategoryID); Barcode único global.
// El stock no vive aquí: se lleva por bodega en Stock.
type Product struct {
	ID            string
	Name          string
	CategoryID    string
	Barcode       string
	PurchasePrice decimal.Decimal // precio de compra, base del cálculo de ganancia
	SellingPrice  decimal.Decimal // precio de venta por defecto en caja
	PhotoURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductSummary producto con nombre de categoría y stock total en todas las bodegas.
type ProductSummary struct {
	Product
	CategoryName string
	TotalStock   int64
}
