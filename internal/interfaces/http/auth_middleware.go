package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalClaims = "claims"
	LocalActor  = "actor"
)

// revocationChecker lo implementa auth.TokenBlocklist; nil = sin revocación.
type revocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados y deja claims y Actor en c.Locals.
func AuthMiddleware(jwtSecret string, revoked revocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || claims.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TOKEN_CHECK_FAILED", Message: "no se pudo verificar el token, intente más tarde"})
			}
			if isRevoked {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "REVOKED_TOKEN", Message: "sesión cerrada"})
			}
		}
		c.Locals(LocalClaims, claims)
		c.Locals(LocalActor, entity.Actor{
			UserID:      claims.UserID,
			EmployeeID:  claims.EmployeeID,
			WarehouseID: claims.WarehouseID,
			IsSuperuser: claims.IsSuperuser(),
		})
		return c.Next()
	}
}

// activeChecker lo implementa auth.AuthUseCase.
type activeChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// RequireActiveUser rechaza tokens de usuarios desactivados o empleados bloqueados después del login.
// Debe ir después de AuthMiddleware.
func RequireActiveUser(checker activeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
		}
		active, err := checker.IsActive(c.UserContext(), actor.UserID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TOKEN_CHECK_FAILED", Message: "no se pudo verificar el usuario, intente más tarde"})
		}
		if !active {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INACTIVE_USER", Message: "usuario desactivado o bloqueado"})
		}
		return c.Next()
	}
}

// GetClaims devuelve los claims del token (después del middleware de auth).
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// GetActor devuelve el actor autenticado; vacío si no pasó por AuthMiddleware.
func GetActor(c *fiber.Ctx) entity.Actor {
	a, _ := c.Locals(LocalActor).(entity.Actor)
	return a
}

// GetUserID devuelve el UserID del contexto.
func GetUserID(c *fiber.Ctx) string {
	return GetActor(c).UserID
}

// GetRole devuelve el rol del token: superuser o el cargo del empleado.
func GetRole(c *fiber.Ctx) string {
	if claims := GetClaims(c); claims != nil {
		return claims.Role
	}
	return ""
}
