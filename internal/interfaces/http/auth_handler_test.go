package http_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	apphttp "github.com/jhoicas/inventory-manager/internal/interfaces/http"
)

func buildAuthApp(users *memUsers, secure bool) *fiber.App {
	uc := newAuthUC(users)
	h := apphttp.NewAuthHandler(uc, nil, secure, 8*time.Hour)
	app := newApp()
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/auth/me", h.Me)
	app.Post("/api/auth/register", apphttp.AuthMiddleware(uc), apphttp.RequireAdmin(uc), h.Register)
	return app
}

func TestLogin_SeteaCookieDeSesion(t *testing.T) {
	app := buildAuthApp(newUsers(t), true)
	resp := do(t, app, http.MethodPost, "/api/auth/login", `{"username":"maria","password":"secreta"}`, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "debe enviarse la cookie auth-token")
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 8*60*60, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	user, _ := body["user"].(map[string]any)
	assert.Equal(t, "maria", user["username"])
	assert.Equal(t, entity.RoleAdmin, user["role"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, body, "token", "el token solo viaja en la cookie http-only")
}

func TestLogin_CookieSinSecureFueraDeProduccion(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodPost, "/api/auth/login", `{"username":"maria","password":"secreta"}`, "")
	defer resp.Body.Close()

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.False(t, cookie.Secure)
}

// Usuario inexistente y password incorrecto deben ser indistinguibles.
func TestLogin_UsuarioInexistenteYPasswordIncorrecto_MismaRespuesta(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)

	unknown := do(t, app, http.MethodPost, "/api/auth/login", `{"username":"nadie","password":"secreta"}`, "")
	wrong := do(t, app, http.MethodPost, "/api/auth/login", `{"username":"maria","password":"otra"}`, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, unknown.StatusCode, wrong.StatusCode)
	assert.Equal(t, readBody(t, unknown), readBody(t, wrong))
	assert.Nil(t, sessionCookie(wrong))
}

func TestLogin_CamposVacios_Retorna400(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodPost, "/api/auth/login", `{"username":"maria"}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodPost, "/api/auth/login", `{no es json`, "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INVALID_BODY")
}

func TestMe_ConSesion(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodGet, "/api/auth/me", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, _ := decode(t, resp)["user"].(map[string]any)
	assert.Equal(t, "pedro", user["username"])
	assert.Equal(t, staffID, user["id"])
}

func TestMe_SinSesion_Retorna401UserNull(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodGet, "/api/auth/me", "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"user":null}`, readBody(t, resp))
}

func TestLogout_BorraCookie(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodPost, "/api/auth/logout", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()), "la cookie debe quedar expirada")

	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "/login", body["redirect"])
}

// brokenDenylist simula Redis caído.
type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Time) error {
	return errors.New("redis caído")
}

func (brokenDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func TestLogout_RevocacionFallida_IgualBorraCookie(t *testing.T) {
	uc := auth.NewAuthUseCase(newUsers(t), brokenDenylist{}, auth.JWTConfig{Secret: testJWTSecret, TTL: 8 * time.Hour, Issuer: testIssuer})
	h := apphttp.NewAuthHandler(uc, nil, false, 8*time.Hour)
	app := newApp()
	app.Post("/api/auth/logout", h.Logout)

	resp := do(t, app, http.MethodPost, "/api/auth/logout", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "la cookie se borra aunque Redis falle")
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))

	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "/login", body["redirect"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Register (solo admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Admin_Crea(t *testing.T) {
	users := newUsers(t)
	app := buildAuthApp(users, false)
	resp := do(t, app, http.MethodPost, "/api/auth/register",
		`{"username":"lucia","password":"clave","role":"staff"}`, tokenFor(t, adminID, "maria", entity.RoleAdmin))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["success"])
	assert.Len(t, users.users, 3)
}

func TestRegister_Staff_Retorna403(t *testing.T) {
	users := newUsers(t)
	app := buildAuthApp(users, false)
	resp := do(t, app, http.MethodPost, "/api/auth/register",
		`{"username":"lucia","password":"clave","role":"staff"}`, tokenFor(t, staffID, "pedro", entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Len(t, users.users, 2)
}

func TestRegister_SinSesion_Retorna401(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodPost, "/api/auth/register", `{"username":"x","password":"y","role":"staff"}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_UsernameDuplicado_Retorna400(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodPost, "/api/auth/register",
		`{"username":"pedro","password":"clave","role":"staff"}`, tokenFor(t, adminID, "maria", entity.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "USERNAME_TAKEN")
}

func TestRegister_RolInvalido_Retorna400(t *testing.T) {
	app := buildAuthApp(newUsers(t), false)
	resp := do(t, app, http.MethodPost, "/api/auth/register",
		`{"username":"lucia","password":"clave","role":"root"}`, tokenFor(t, adminID, "maria", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
