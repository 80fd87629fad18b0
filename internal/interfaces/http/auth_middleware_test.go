package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	apphttp "github.com/jhoicas/inventory-manager/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-manager/pkg/jwt"
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar la sesión y cargar locals
//   - RequireAdmin en /admin (relee el rol en la DB)
//   - Handlers dummy que devuelven 200 si pasan los middlewares
func buildTestApp(users *memUsers) *fiber.App {
	uc := newAuthUC(users)
	app := newApp()
	identity := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"role":     apphttp.GetRole(c),
		})
	}
	app.Get("/protected", apphttp.AuthMiddleware(uc), identity)
	app.Get("/admin", apphttp.AuthMiddleware(uc), apphttp.RequireAdmin(uc), identity)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CookieValida_CargaClaims(t *testing.T) {
	app := buildTestApp(newUsers(t))
	resp := do(t, app, http.MethodGet, "/protected", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, staffID, body["user_id"])
	assert.Equal(t, "pedro", body["username"])
	assert.Equal(t, entity.RoleStaff, body["role"])
}

func TestAuthMiddleware_BearerAceptado(t *testing.T) {
	app := buildTestApp(newUsers(t))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, staffID, "pedro", entity.RoleStaff))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(newUsers(t))
	resp := do(t, app, http.MethodGet, "/protected", "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "UNAUTHORIZED")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(newUsers(t))
	resp := do(t, app, http.MethodGet, "/protected", "", "token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un token emitido hace más de 8 horas ya no autentica.
func TestAuthMiddleware_TokenDeMasDe8Horas_Retorna401(t *testing.T) {
	app := buildTestApp(newUsers(t))
	tok, err := pkgjwt.GenerateAt(testJWTSecret, testIssuer, adminID, "maria", entity.RoleAdmin, 8*time.Hour, time.Now().Add(-8*time.Hour-time.Minute))
	require.NoError(t, err)

	resp := do(t, app, http.MethodGet, "/protected", "", tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(newUsers(t))
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testIssuer, adminID, "maria", entity.RoleAdmin, time.Hour)
	require.NoError(t, err)

	resp := do(t, app, http.MethodGet, "/protected", "", tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp(newUsers(t))
	resp := do(t, app, http.MethodGet, "/admin", "", tokenFor(t, adminID, "maria", entity.RoleAdmin))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleAdmin, decode(t, resp)["role"])
}

func TestRequireAdmin_StaffBloqueado(t *testing.T) {
	app := buildTestApp(newUsers(t))
	resp := do(t, app, http.MethodGet, "/admin", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "FORBIDDEN")
}

// El token aún dice admin pero la DB ya lo degradó: gana la DB.
func TestRequireAdmin_AdminDegradado_Bloqueado(t *testing.T) {
	users := newUsers(t)
	tok := tokenFor(t, adminID, "maria", entity.RoleAdmin)
	users.users[adminID].Role = entity.RoleStaff

	resp := do(t, buildTestApp(users), http.MethodGet, "/admin", "", tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAdmin_UsuarioBorrado_Retorna401(t *testing.T) {
	users := newUsers(t)
	tok := tokenFor(t, adminID, "maria", entity.RoleAdmin)
	delete(users.users, adminID)

	resp := do(t, buildTestApp(users), http.MethodGet, "/admin", "", tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
