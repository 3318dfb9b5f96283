package sales_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/application/sales"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

type stubExporter struct {
	csvRows int
	opts    sales.ExportOptions
}

func (e *stubExporter) CSV(rows []dto.SalesReportRow, opts sales.ExportOptions) ([]byte, error) {
	e.csvRows = len(rows)
	e.opts = opts
	return []byte("csv"), nil
}

func (e *stubExporter) XLSX(_ *dto.SalesReportResponse, opts sales.ExportOptions) ([]byte, error) {
	e.opts = opts
	return []byte("xlsx"), nil
}

func TestBuildReport_TotalesPorVenta(t *testing.T) {
	rows := []entity.SalesReportRow{
		{SaleID: "s1", PaymentMethod: "kaspi", Quantity: 2, Price: dec("100"), Total: dec("200"), PurchasePrice: dec("60"), SaleTotal: dec("350")},
		{SaleID: "s1", PaymentMethod: "kaspi", Quantity: 1, Price: dec("150"), Total: dec("150"), PurchasePrice: dec("100"), SaleTotal: dec("350")},
		{SaleID: "s2", PaymentMethod: "mixed", Quantity: 1, Price: dec("40"), Total: dec("40"), PurchasePrice: dec("50"), SaleTotal: dec("40")},
		{SaleID: "s3", PaymentMethod: "delayed", Quantity: 3, Price: dec("10"), Total: dec("30"), PurchasePrice: dec("5"), SaleTotal: dec("30")},
	}

	rep := sales.BuildReport(rows)
	require.Len(t, rep.Rows, 4)
	assert.True(t, dec("80").Equal(rep.Rows[0].Profit))
	assert.True(t, dec("-10").Equal(rep.Rows[2].Profit), "vender bajo costo da ganancia negativa")

	st := rep.Stats
	assert.Equal(t, int64(7), st.TotalQty)
	assert.Equal(t, 3, st.SalesCount)
	assert.True(t, dec("420").Equal(st.TotalAmount))
	assert.True(t, dec("135").Equal(st.TotalProfit))
	assert.True(t, dec("350").Equal(st.KaspiTotal), "una venta de varias líneas cuenta una sola vez")
	assert.True(t, dec("40").Equal(st.MixedTotal))
	assert.True(t, dec("30").Equal(st.DelayedTotal))
	assert.True(t, st.CashTotal.IsZero())
	assert.True(t, st.HalykTotal.IsZero())
}

func TestReport_EndToEnd(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	checkout := sales.NewCheckoutUseCase(s, logger.Nop())
	whA := seedWarehouse(t, s, "A")
	whB := seedWarehouse(t, s, "B")
	p := seedProduct(t, s, "milk", "1", "300", "450")

	for _, wh := range []string{whA, whA, whB} {
		_, err := checkout.Checkout(ctx, admin, dto.CheckoutRequest{
			WarehouseID:   wh,
			PaymentMethod: entity.PaymentHalyk,
			Items:         []dto.SaleItemRequest{{ProductID: p, Quantity: 2}},
		})
		require.NoError(t, err)
	}

	exp := &stubExporter{}
	loc := time.FixedZone("ALMT", 5*3600)
	uc := sales.NewReportUseCase(s.Repos().Sales, exp, loc)

	rep, err := uc.SalesReport(ctx, admin, dto.SalesReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Stats.SalesCount)
	assert.True(t, dec("2700").Equal(rep.Stats.HalykTotal))
	assert.True(t, dec("900").Equal(rep.Stats.TotalProfit))

	accountant := entity.Actor{UserID: "u", EmployeeID: "e", WarehouseID: whB}
	rep, err = uc.SalesReport(ctx, accountant, dto.SalesReportQuery{WarehouseID: whA})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Stats.SalesCount, "el empleado solo ve su bodega")
	assert.Equal(t, "B", rep.Rows[0].Warehouse)

	file, err := uc.Export(ctx, admin, dto.SalesReportQuery{}, sales.FormatCSV, "cp1251")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.Name, "sales_"))
	assert.True(t, strings.HasSuffix(file.Name, ".csv"))
	assert.Equal(t, "text/csv; charset=windows-1251", file.ContentType)
	assert.Equal(t, 3, exp.csvRows)
	assert.Equal(t, loc, exp.opts.Location)

	file, err = uc.Export(ctx, admin, dto.SalesReportQuery{}, sales.FormatXLSX, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Name, ".xlsx"))

	_, err = uc.Export(ctx, admin, dto.SalesReportQuery{}, "pdf", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	exp.csvRows = 0
	_, err = uc.Export(ctx, admin, dto.SalesReportQuery{}, sales.FormatCSV, "latin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, exp.csvRows, "no llega al exportador")
}

func TestReport_RangoInvertido(t *testing.T) {
	uc := sales.NewReportUseCase(memory.New().Repos().Sales, &stubExporter{}, nil)
	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err := uc.SalesReport(context.Background(), admin, dto.SalesReportQuery{StartDate: &from, EndDate: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
