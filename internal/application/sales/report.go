package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// Formatos de exportación del reporte.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportFile archivo listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// ReportUseCase reporte de ventas con ganancia y totales por método de pago.
type ReportUseCase struct {
	sales    repository.SaleRepository
	exporter SalesExporter
	loc      *time.Location
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso. loc define las fechas del archivo exportado.
func NewReportUseCase(sales repository.SaleRepository, exporter SalesExporter, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{sales: sales, exporter: exporter, loc: loc, now: time.Now}
}

// SalesReport una fila por línea vendida y los totales del período.
func (uc *ReportUseCase) SalesReport(ctx context.Context, actor entity.Actor, q dto.SalesReportQuery) (*dto.SalesReportResponse, error) {
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	rows, err := uc.sales.ReportRows(ctx, repository.OperationFilter{
		WarehouseID: actor.ScopeWarehouse(q.WarehouseID),
		From:        q.StartDate,
		To:          q.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return BuildReport(rows), nil
}

// Export genera el reporte en CSV o XLSX.
func (uc *ReportUseCase) Export(ctx context.Context, actor entity.Actor, q dto.SalesReportQuery, format, encoding string) (*ExportFile, error) {
	if format == FormatCSV && encoding != "" && encoding != "utf-8" && encoding != "cp1251" {
		return nil, fmt.Errorf("%w: codificación %q no soportada", domain.ErrInvalidInput, encoding)
	}
	report, err := uc.SalesReport(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	opts := ExportOptions{Location: uc.loc, Encoding: encoding}
	stamp := uc.now().In(uc.loc).Format("20060102_150405")
	switch format {
	case FormatCSV:
		body, err := uc.exporter.CSV(report.Rows, opts)
		if err != nil {
			return nil, err
		}
		contentType := "text/csv; charset=utf-8"
		if encoding == "cp1251" {
			contentType = "text/csv; charset=windows-1251"
		}
		return &ExportFile{Name: "sales_" + stamp + ".csv", ContentType: contentType, Body: body}, nil
	case FormatXLSX:
		body, err := uc.exporter.XLSX(report, opts)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        "sales_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
}

// BuildReport arma filas y totales. Los totales por método suman cada venta una sola vez.
func BuildReport(rows []entity.SalesReportRow) *dto.SalesReportResponse {
	out := &dto.SalesReportResponse{Rows: make([]dto.SalesReportRow, 0, len(rows))}
	st := dto.SalesReportStats{
		TotalAmount:  decimal.Zero,
		TotalProfit:  decimal.Zero,
		KaspiTotal:   decimal.Zero,
		HalykTotal:   decimal.Zero,
		CashTotal:    decimal.Zero,
		MixedTotal:   decimal.Zero,
		DelayedTotal: decimal.Zero,
	}
	seen := make(map[string]struct{})
	for _, r := range rows {
		profit := r.Profit()
		out.Rows = append(out.Rows, dto.SalesReportRow{
			Date:          r.Date,
			ReceiptNumber: r.ReceiptNumber,
			Warehouse:     r.WarehouseName,
			Product:       r.ProductName,
			Quantity:      r.Quantity,
			Price:         r.Price,
			Total:         r.Total,
			PaymentMethod: r.PaymentMethod,
			Profit:        profit,
		})
		st.TotalQty += r.Quantity
		st.TotalAmount = st.TotalAmount.Add(r.Total)
		st.TotalProfit = st.TotalProfit.Add(profit)

		if _, ok := seen[r.SaleID]; ok {
			continue
		}
		seen[r.SaleID] = struct{}{}
		st.SalesCount++
		switch r.PaymentMethod {
		case entity.PaymentKaspi:
			st.KaspiTotal = st.KaspiTotal.Add(r.SaleTotal)
		case entity.PaymentHalyk:
			st.HalykTotal = st.HalykTotal.Add(r.SaleTotal)
		case entity.PaymentCash:
			st.CashTotal = st.CashTotal.Add(r.SaleTotal)
		case entity.PaymentMixed:
			st.MixedTotal = st.MixedTotal.Add(r.SaleTotal)
		case entity.PaymentDelayed:
			st.DelayedTotal = st.DelayedTotal.Add(r.SaleTotal)
		}
	}
	out.Stats = st
	return out
}
