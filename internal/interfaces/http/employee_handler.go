package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/application/usecase"
)

// EmployeeHandler empleados, secciones y registro de acciones.
type EmployeeHandler struct {
	errorHandler
	uc       *usecase.EmployeeUseCase
	sections *usecase.SectionService
	activity *usecase.ActivityUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, sections *usecase.SectionService, activity *usecase.ActivityUseCase, eh errorHandler) *EmployeeHandler {
	return &EmployeeHandler{errorHandler: eh, uc: uc, sections: sections, activity: activity}
}

// Create godoc
// @Summary      Crear empleado (usuario + perfil; sin secciones aplica el preset del cargo)
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado (los cambios de secciones rigen desde el próximo login)
// @Tags         employees
// @Security     Bearer
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.EmployeeResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.UpdateEmployeeRequest
	if err := bind(c, &in); err != nil {
		return h.respond(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {object}  dto.EmployeeListResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	warehouseID, err := uuidQuery(c, "warehouse_id")
	if err != nil {
		return h.respond(c, err)
	}
	p := pageQuery(c)
	out, err := h.uc.List(c.UserContext(), GetActor(c), warehouseID, p.Limit, p.Offset)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}

// Sections godoc
// @Summary      Catálogo de secciones de acceso
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SectionResponse
// @Router       /api/sections [get]
func (h *EmployeeHandler) Sections(c *fiber.Ctx) error {
	list, err := h.sections.List(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	out := make([]dto.SectionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SectionResponse{Slug: s.Slug, Name: s.Name})
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Registro de acciones (el empleado ve las de su bodega)
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActivityLogListResponse
// @Router       /api/logs [get]
func (h *EmployeeHandler) Logs(c *fiber.Ctx) error {
	p := pageQuery(c)
	out, err := h.activity.List(c.UserContext(), GetActor(c), p.Limit, p.Offset)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(out)
}
