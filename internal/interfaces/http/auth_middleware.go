package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
)

// Locals keys para la identidad de la sesión en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// SessionCookie nombre de la cookie http-only con el token de sesión.
const SessionCookie = "auth-token"

// sessionVerifier contrato mínimo para validar el token (lo implementa *auth.AuthUseCase).
type sessionVerifier interface {
	CurrentUser(ctx context.Context, token string) (*auth.SessionUser, error)
}

// roleReader lee el rol vigente en la DB.
type roleReader interface {
	CurrentRole(ctx context.Context, userID string) (string, error)
}

// sessionToken extrae el token de la cookie o, para clientes API, del header Bearer.
func sessionToken(c *fiber.Ctx) string {
	if tok := c.Cookies(SessionCookie); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware valida la sesión y carga user_id, username y role en c.Locals.
// Cualquier fallo responde 401 con el mismo cuerpo.
func AuthMiddleware(sessions sessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := sessions.CurrentUser(c.UserContext(), sessionToken(c))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUsername, user.Username)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireAdmin exige rol admin. Debe usarse DESPUÉS de AuthMiddleware.
// El rol se relee de la DB para que una degradación surta efecto de inmediato.
func RequireAdmin(roles roleReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
		}
		role, err := roles.CurrentRole(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		if role != entity.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requiere rol admin",
			})
		}
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetUsername devuelve el username del contexto.
func GetUsername(c *fiber.Ctx) string { return localString(c, LocalUsername) }

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }
