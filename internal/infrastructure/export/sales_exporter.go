// Package export serializa el reporte de ventas en CSV y XLSX.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/application/sales"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

// Encodings aceptadas para CSV.
const (
	EncodingUTF8   = "utf-8"
	EncodingCP1251 = "cp1251"
)

const dateLayout = "2006-01-02 15:04"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Columnas del CSV.
var csvHeader = []string{"Date", "Warehouse", "Product", "Quantity", "Price", "Total", "Payment method"}

var _ sales.SalesExporter = (*SalesExporter)(nil)

// SalesExporter implementa sales.SalesExporter.
type SalesExporter struct{}

// NewSalesExporter construye el exportador.
func NewSalesExporter() *SalesExporter { return &SalesExporter{} }

// SupportedEncoding indica si la codificación CSV es conocida ("" = utf-8).
func SupportedEncoding(enc string) bool {
	return enc == "" || enc == EncodingUTF8 || enc == EncodingCP1251
}

// CSV una fila por línea vendida. UTF-8 lleva BOM para que Excel detecte la codificación;
// en cp1251 los caracteres sin representación salen como '?'.
func (e *SalesExporter) CSV(rows []dto.SalesReportRow, opts sales.ExportOptions) ([]byte, error) {
	if !SupportedEncoding(opts.Encoding) {
		return nil, fmt.Errorf("%w: codificación %q no soportada", domain.ErrInvalidInput, opts.Encoding)
	}
	loc := location(opts)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.Date.In(loc).Format(dateLayout),
			r.Warehouse,
			r.Product,
			strconv.FormatInt(r.Quantity, 10),
			r.Price.StringFixed(2),
			r.Total.StringFixed(2),
			entity.PaymentMethodLabel(r.PaymentMethod),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}

	if opts.Encoding == EncodingCP1251 {
		out, _, err := transform.Bytes(transform.Chain(runes.Map(cp1251Fallback), charmap.Windows1251.NewEncoder()), buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("export csv: codificar cp1251: %w", err)
		}
		return out, nil
	}
	return append(append([]byte{}, utf8BOM...), buf.Bytes()...), nil
}

func cp1251Fallback(r rune) rune {
	if _, ok := charmap.Windows1251.EncodeRune(r); ok {
		return r
	}
	return '?'
}

const (
	sheetRows  = "Sales"
	sheetStats = "Summary"
)

// XLSX hoja de filas (con número de recibo y ganancia) y hoja de totales.
func (e *SalesExporter) XLSX(report *dto.SalesReportResponse, opts sales.ExportOptions) ([]byte, error) {
	loc := location(opts)
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetRows); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	header := []any{"Date", "Receipt", "Warehouse", "Product", "Quantity", "Price", "Total", "Payment method", "Profit"}
	if err := f.SetSheetRow(sheetRows, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetRows, 1, 1, bold); err != nil {
		return nil, err
	}
	for i, r := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		price, _ := r.Price.Float64()
		total, _ := r.Total.Float64()
		profit, _ := r.Profit.Float64()
		values := []any{
			r.Date.In(loc).Format(dateLayout), r.ReceiptNumber, r.Warehouse, r.Product,
			r.Quantity, price, total, entity.PaymentMethodLabel(r.PaymentMethod), profit,
		}
		if err := f.SetSheetRow(sheetRows, cell, &values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetRows, "A", "A", 18)
	_ = f.SetColWidth(sheetRows, "C", "D", 28)

	if _, err := f.NewSheet(sheetStats); err != nil {
		return nil, err
	}
	st := report.Stats
	stats := [][]any{
		{"Sales count", st.SalesCount},
		{"Total quantity", st.TotalQty},
		{"Total amount", st.TotalAmount.StringFixed(2)},
		{"Total profit", st.TotalProfit.StringFixed(2)},
		{"Kaspi", st.KaspiTotal.StringFixed(2)},
		{"Halyk", st.HalykTotal.StringFixed(2)},
		{"Cash", st.CashTotal.StringFixed(2)},
		{"Mixed", st.MixedTotal.StringFixed(2)},
		{"Delayed", st.DelayedTotal.StringFixed(2)},
	}
	for i, s := range stats {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetStats, cell, &s); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetStats, "A", "A", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func location(opts sales.ExportOptions) *time.Location {
	if opts.Location == nil {
		return time.UTC
	}
	return opts.Location
}
