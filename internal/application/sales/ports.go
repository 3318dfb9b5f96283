package sales

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
)

// ReceiptPDFGenerator genera el recibo imprimible de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.SaleView, loc *time.Location) ([]byte, error)
}

// ExportOptions formato de fechas y codificación del archivo exportado.
type ExportOptions struct {
	Location *time.Location
	Encoding string // utf-8 (por defecto, con BOM) o cp1251; solo CSV
}

// SalesExporter serializa el reporte de ventas.
type SalesExporter interface {
	CSV(rows []dto.SalesReportRow, opts ExportOptions) ([]byte, error)
	XLSX(report *dto.SalesReportResponse, opts ExportOptions) ([]byte, error)
}
