package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/application/sales"
)

// SalesHandler punto de venta, pedidos, recibos y reportes.
type SalesHandler struct {
	errorHandler
	checkout *sales.CheckoutUseCase
	orders   *sales.OrdersUseCase
	reports  *sales.ReportUseCase
	loc      *time.Location
}

// NewSalesHandler construye el handler.
func NewSalesHandler(
	checkout *sales.CheckoutUseCase,
	orders *sales.OrdersUseCase,
	reports *sales.ReportUseCase,
	loc *time.Location,
	eh errorHandler,
) *SalesHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesHandler{errorHandler: eh, checkout: checkout, orders: orders, reports: reports, loc: loc}
}

// Catalog godoc
// @Summary      Catálogo del POS con stock de la bodega del empleado
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.POSCatalogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pos [get]
func (h *SalesHandler) Catalog(c *fiber.Ctx) error {
	out, err := h.orders.Catalog(c.UserContext(), GetActor(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Registrar venta (asigna número de recibo y descuenta stock)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Líneas y pagos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.checkout.Checkout(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSale godoc
// @Summary      Las ventas no se modifican
// @Tags         pos
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SalesHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	return h.respond(c, h.checkout.Update(c.UserContext(), GetActor(c), id))
}

// Receipt godoc
// @Summary      Recibo PDF de la venta
// @Tags         pos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	body, number, err := h.orders.ReceiptPDF(c.UserContext(), GetActor(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="receipt_%d.pdf"`, number))
	return c.Send(body)
}

// ListOrders godoc
// @Summary      Historial de ventas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *SalesHandler) ListOrders(c *fiber.Ctx) error {
	q, err := operationQuery(c, h.loc)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.orders.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Detalle de una venta
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *SalesHandler) GetOrder(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.orders.GetByID(c.UserContext(), GetActor(c), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// SalesReport godoc
// @Summary      Reporte de ventas con ganancia; ?export=csv|xlsx descarga el archivo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        export        query  string  false  "csv o xlsx"
// @Param        encoding      query  string  false  "utf-8 (default) o cp1251, solo csv"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *SalesHandler) SalesReport(c *fiber.Ctx) error {
	oq, err := operationQuery(c, h.loc)
	if err != nil {
		return h.respond(c, err)
	}
	q := dto.SalesReportQuery{StartDate: oq.StartDate, EndDate: oq.EndDate, WarehouseID: oq.WarehouseID}

	if format := c.Query("export"); format != "" {
		file, err := h.reports.Export(c.UserContext(), GetActor(c), q, format, c.Query("encoding"))
		if err != nil {
			return h.respond(c, err)
		}
		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
		return c.Send(file.Body)
	}

	out, err := h.reports.SalesReport(c.UserContext(), GetActor(c), q)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
