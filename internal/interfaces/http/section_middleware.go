package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
)

// RequireSection devuelve un middleware Fiber que verifica que el token habilite la sección.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalClaims). El superusuario pasa siempre.
//
// Comportamiento:
//   - 401 Unauthorized → no hay claims en el contexto.
//   - 403 Forbidden    → la sección no está entre las del empleado.
func RequireSection(slug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "token requerido",
			})
		}
		if !claims.HasSection(slug) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la sección '" + slug + "' no está habilitada para este usuario",
			})
		}
		return c.Next()
	}
}

// RequireSuperuser solo superusuarios.
func RequireSuperuser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetActor(c).IsSuperuser {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "requiere superusuario",
			})
		}
		return c.Next()
	}
}
