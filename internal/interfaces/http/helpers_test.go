package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
	apphttp "github.com/jhoicas/inventory-manager/internal/interfaces/http"
	"github.com/jhoicas/inventory-manager/pkg/logger"
	pkgjwt "github.com/jhoicas/inventory-manager/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventory-api-test"
	adminID       = "00000000-0000-0000-0000-000000000001"
	staffID       = "00000000-0000-0000-0000-000000000002"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

var _ repository.UserRepository = (*memUsers)(nil)

// newUsers siembra un admin (maria/secreta) y un staff (pedro/secreta).
func newUsers(t *testing.T) *memUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.MinCost)
	require.NoError(t, err)
	return &memUsers{users: map[string]*entity.User{
		adminID: {ID: adminID, Username: "maria", PasswordHash: string(hash), Role: entity.RoleAdmin},
		staffID: {ID: staffID, Username: "pedro", PasswordHash: string(hash), Role: entity.RoleStaff},
	}}
}

func newAuthUC(users repository.UserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, nil, auth.JWTConfig{Secret: testJWTSecret, TTL: 8 * time.Hour, Issuer: testIssuer})
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
}

// tokenFor genera un token vigente para el usuario indicado.
func tokenFor(t *testing.T, userID, username, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, userID, username, role, 8*time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// do lanza la petición con el token en la cookie auth-token (si no es vacío).
func do(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.SessionCookie {
			return c
		}
	}
	return nil
}
