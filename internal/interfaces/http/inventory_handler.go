package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/application/usecase"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
)

// InventoryHandler stock, ingresos y movimientos entre bodegas.
type InventoryHandler struct {
	errorHandler
	stocks    *usecase.StockUseCase
	incoming  *inventory.IncomingUseCase
	movements *inventory.MovementUseCase
	loc       *time.Location
}

// NewInventoryHandler construye el handler. loc interpreta start_date y end_date.
func NewInventoryHandler(
	stocks *usecase.StockUseCase,
	incoming *inventory.IncomingUseCase,
	movements *inventory.MovementUseCase,
	loc *time.Location,
	eh errorHandler,
) *InventoryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &InventoryHandler{errorHandler: eh, stocks: stocks, incoming: incoming, movements: movements, loc: loc}
}

// ListStocks godoc
// @Summary      Stock por bodega y producto
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stocks [get]
func (h *InventoryHandler) ListStocks(c *fiber.Ctx) error {
	warehouseID, err := uuidQuery(c, "warehouse_id")
	if err != nil {
		return h.respond(c, err)
	}
	productID, err := uuidQuery(c, "product_id")
	if err != nil {
		return h.respond(c, err)
	}
	p := pageQuery(c)
	out, err := h.stocks.List(c.UserContext(), GetActor(c), repository.StockFilter{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Limit:       p.Limit,
		Offset:      p.Offset,
	})
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateIncoming godoc
// @Summary      Registrar ingreso de mercadería
// @Tags         incoming
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IncomingRequest  true  "Producto, bodega y cantidad"
// @Success      201   {object}  dto.IncomingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/incoming [post]
func (h *InventoryHandler) CreateIncoming(c *fiber.Ctx) error {
	var in dto.IncomingRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.incoming.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateIncomingBatch godoc
// @Summary      Ingreso por lote (todo o nada)
// @Tags         incoming
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IncomingBatchRequest  true  "Bodega y líneas"
// @Success      201   {array}   dto.IncomingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/incoming/batch [post]
func (h *InventoryHandler) CreateIncomingBatch(c *fiber.Ctx) error {
	var in dto.IncomingBatchRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.incoming.CreateBatch(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateIncoming godoc
// @Summary      Editar ingreso (revierte el efecto anterior y aplica el nuevo)
// @Tags         incoming
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingreso"
// @Param        body  body  dto.IncomingRequest  true  "Nuevos valores"
// @Success      200   {object}  dto.IncomingResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/incoming/{id} [put]
func (h *InventoryHandler) UpdateIncoming(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.IncomingRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.incoming.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// DeleteIncoming godoc
// @Summary      Eliminar ingreso (descuenta el stock)
// @Tags         incoming
// @Security     Bearer
// @Param        id   path  string  true  "ID del ingreso"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/incoming/{id} [delete]
func (h *InventoryHandler) DeleteIncoming(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	if err := h.incoming.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListIncoming godoc
// @Summary      Listar ingresos
// @Tags         incoming
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.IncomingListResponse
// @Router       /api/incoming [get]
func (h *InventoryHandler) ListIncoming(c *fiber.Ctx) error {
	q, err := operationQuery(c, h.loc)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.incoming.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// CreateMovement godoc
// @Summary      Mover mercadería entre bodegas
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Origen, destino, producto y cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.movements.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMovement godoc
// @Summary      Editar movimiento
// @Tags         movements
// @Security     Bearer
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "Nuevos valores"
// @Success      200   {object}  dto.MovementResponse
// @Router       /api/movements/{id} [put]
func (h *InventoryHandler) UpdateMovement(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.MovementRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.movements.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento (devuelve el stock al origen)
// @Tags         movements
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Router       /api/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	if err := h.movements.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return h.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Listar movimientos (origen o destino)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q, err := operationQuery(c, h.loc)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.movements.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
