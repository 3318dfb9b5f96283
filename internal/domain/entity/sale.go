package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentKaspi   = "kaspi"
	PaymentHalyk   = "halyk"
	PaymentCash    = "cash"
	PaymentMixed   = "mixed"
	PaymentDelayed = "delayed"
)

// PaymentMethods orden estable de los métodos (reportes).
var PaymentMethods = []string{PaymentKaspi, PaymentHalyk, PaymentCash, PaymentMixed, PaymentDelayed}

var paymentLabels = map[string]string{
	PaymentKaspi:   "Kaspi",
	PaymentHalyk:   "Halyk",
	PaymentCash:    "Наличные",
	PaymentMixed:   "Смешанная",
	PaymentDelayed: "Отложенная",
}

// PaymentMethodLabel nombre visible del método; el slug si no se conoce.
func PaymentMethodLabel(m string) string {
	if l, ok := paymentLabels[m]; ok {
		return l
	}
	return m
}

// ValidPaymentMethod indica si el método existe.
func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// Sale venta de caja. Inmutable una vez creada; ReceiptNumber estrictamente creciente.
type Sale struct {
	ID             string
	ReceiptNumber  int64
	WarehouseID    string
	SellerID       string
	PaymentMethod  string
	CashAmount     decimal.Decimal
	HalykAmount    decimal.Decimal
	KaspiAmount    decimal.Decimal
	CashGiven      decimal.Decimal
	ChangeDue      decimal.Decimal
	PaymentDetails string
	Total          decimal.Decimal
	CreatedAt      time.Time
	Items          []SaleItem
}

// SaleItem línea de venta; resta Quantity en la bodega de la venta aunque quede negativo.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal
	Total     decimal.Decimal
}

// SaleView venta con nombres para pedidos y recibo.
type SaleView struct {
	Sale
	WarehouseName  string
	SellerUsername string
	ItemNames      map[string]string // product_id -> nombre
}

// SalesReportRow una línea vendida con los datos necesarios para reporte y ganancia.
type SalesReportRow struct {
	SaleID        string
	ReceiptNumber int64
	Date          time.Time
	WarehouseName string
	ProductName   string
	Quantity      int64
	Price         decimal.Decimal
	Total         decimal.Decimal
	PurchasePrice decimal.Decimal
	PaymentMethod string
	SaleTotal     decimal.Decimal
}

// Profit ganancia de la línea: (precio - precio de compra) * cantidad.
func (r SalesReportRow) Profit() decimal.Decimal {
	return r.Price.Sub(r.PurchasePrice).Mul(decimal.NewFromInt(r.Quantity))
}
