package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-manager/internal/application/analytics"
	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/pkg/logger"
)

func TestRespondError_Mapeo(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"stock insuficiente", &domain.StockError{Err: domain.ErrInsufficientStock, ProductID: "p-1", Available: 5, Requested: 7}, 400, "STOCK"},
		{"producto de línea inexistente", &domain.StockError{Err: domain.ErrNotFound, ProductID: "p-x"}, 400, "STOCK"},
		{"validación", fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput), 400, "VALIDATION"},
		{"en uso", domain.ErrInUse, 400, "IN_USE"},
		{"username ocupado", domain.ErrUsernameTaken, 400, "USERNAME_TAKEN"},
		{"export desconocido", analytics.ErrUnknownExport, 400, "VALIDATION"},
		{"credenciales", domain.ErrInvalidCredentials, 401, "INVALID_CREDENTIALS"},
		{"no autenticado", domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, 403, "FORBIDDEN"},
		{"no encontrado", fmt.Errorf("%w: cliente k-9", domain.ErrNotFound), 404, "NOT_FOUND"},
		{"pdf no disponible", analytics.ErrPDFUnavailable, 503, "UNAVAILABLE"},
		{"inesperado", errors.New("conexión rechazada"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRespondError_StockIncluyeDisponible(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, &domain.StockError{Err: domain.ErrInsufficientStock, ProductID: "p-1", Available: 5, Requested: 7})
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "Disponible: 5")
	assert.Contains(t, body.Message, "solicitado: 7")
}
