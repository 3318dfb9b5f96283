// Package pdf genera el recibo imprimible de una venta de caja.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  Bodega                 │  Recibo N° + Fecha│
//	│  Cajero / método de pago                  │
//	│  ───────────────────────────────────────  │
//	│  TABLA: Producto | Cant | Precio | Total  │
//	│  ───────────────────────────────────────  │
//	│  TOTAL + desglose de pago + vuelto        │
//	│  QR con el número de recibo               │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-pos/internal/application/sales"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ sales.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
// Con fontPath (TTF UTF-8) los nombres en cirílico se imprimen bien; sin él usa helvetica.
type ReceiptGenerator struct {
	fontPath string
}

// NewReceiptGenerator construye el generador. fontPath puede estar vacío.
func NewReceiptGenerator(fontPath string) *ReceiptGenerator {
	return &ReceiptGenerator{fontPath: fontPath}
}

const customFamily = "receipt"

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.SaleView, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	family := "helvetica"
	b := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithTitle(fmt.Sprintf("Receipt %d", sale.ReceiptNumber), true)
	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(customFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(customFamily, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente: %w", err)
		}
		b = b.WithCustomFonts(fonts)
		family = customFamily
	}
	m := maroto.New(b.WithDefaultFont(&props.Font{Family: family, Size: 9}).Build())

	m.AddRows(headerRow(sale, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(sale)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(qrRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: bodega y cajero (izq), número de recibo y fecha (der).
func headerRow(sale *entity.SaleView, loc *time.Location) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(sale.WarehouseName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Cashier: "+nonEmpty(sale.SellerUsername, "-"), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
			text.New("Payment: "+sale.PaymentMethod, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("RECEIPT No %d", sale.ReceiptNumber), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(sale.CreatedAt.In(loc).Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Product", 6, align.Left),
		h("Qty", 2, align.Center),
		h("Price", 2, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// itemRows una fila por línea vendida.
func itemRows(sale *entity.SaleView) []core.Row {
	out := make([]core.Row, 0, len(sale.Items))
	for _, it := range sale.Items {
		out = append(out, row.New(6).Add(
			col.New(6).Add(text.New(nonEmpty(sale.ItemNames[it.ProductID], it.ProductID),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// totalsRows total y desglose de pago; solo se muestran montos distintos de cero.
func totalsRows(sale *entity.SaleView) []core.Row {
	type entry struct {
		label string
		value decimal.Decimal
		grand bool
	}
	lines := []entry{{label: "TOTAL:", value: sale.Total, grand: true}}
	for _, l := range []entry{
		{label: "Cash:", value: sale.CashAmount},
		{label: "Halyk:", value: sale.HalykAmount},
		{label: "Kaspi:", value: sale.KaspiAmount},
		{label: "Cash given:", value: sale.CashGiven},
		{label: "Change:", value: sale.ChangeDue},
	} {
		if !l.value.IsZero() {
			lines = append(lines, l)
		}
	}

	out := make([]core.Row, 0, len(lines)+1)
	for _, l := range lines {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if l.grand {
			p.Style = fontstyle.Bold
			p.Size = 11
			p.Color = colorPrimary
		}
		out = append(out, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(l.label, p)),
			col.New(3).Add(text.New(formatMoney(l.value), p)),
		))
	}
	if sale.PaymentDetails != "" {
		out = append(out, row.New(6).Add(col.New(12).Add(
			text.New(sale.PaymentDetails, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}
	return out
}

func qrRow(sale *entity.SaleView) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(fmt.Sprintf("%d", sale.ReceiptNumber), props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(text.New("Thank you for your purchase!", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 12, Left: 3, Color: colorPrimary,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con espacio como separador de miles.
// Ej: 1234567.5 → "1 234 567.50", -300 → "-300.00"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	var buf strings.Builder
	if d.IsNegative() {
		buf.WriteByte('-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte(c)
	}
	return buf.String() + "." + frac
}
