package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/pkg/logger"
)

// AuthHandler maneja login, logout, sesión actual y registro.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	log          *logger.Logger
	secureCookie bool
	ttl          time.Duration
}

// NewAuthHandler construye el handler de auth. secureCookie marca la cookie Secure (producción).
// log puede ser nil.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger, secureCookie bool, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{uc: uc, log: log.With("auth"), secureCookie: secureCookie, ttl: ttl}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.LoginResponse{Success: true, User: res.User})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra la cookie de sesión y, si hay Redis, revoca el token.
// @Description  La cookie se borra aunque la revocación falle.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LogoutResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := sessionToken(c)
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	if err := h.uc.Logout(c.UserContext(), token); err != nil {
		// El token sigue vigente hasta su exp; el cliente ya no lo tiene.
		h.log.Error().Err(err).Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).Msg("logout sin revocación")
	}
	return c.JSON(dto.LogoutResponse{Success: true, Redirect: "/login"})
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.CurrentUser(c.UserContext(), sessionToken(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MeResponse{User: nil})
	}
	return c.JSON(dto.MeResponse{User: &dto.UserResponse{ID: user.ID, Username: user.Username, Role: user.Role}})
}

// Register godoc
// @Summary      Registrar usuario (solo admin)
// @Tags         auth
// @Security     Cookie
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, role (admin|staff)"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{Success: true, User: *user})
}
