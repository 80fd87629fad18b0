package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-manager/internal/application/analytics"
	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/pkg/logger"
)

const internalMessage = "error interno del servidor"

// respondError traduce errores de dominio a status y ErrorResponse.
// Los no reconocidos se devuelven a Fiber para que ErrorHandler los registre y responda 500.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STOCK", Message: stockErr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInUse):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "IN_USE", Message: "no se puede eliminar: el registro está referenciado",
		})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: err.Error()})
	case errors.Is(err, analytics.ErrUnknownExport):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: domain.ErrInvalidCredentials.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, analytics.ErrPDFUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: err.Error()})
	}
	return err
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler manejador final de Fiber: errores de Fiber conservan su status,
// el resto se registra y responde 500 con mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "INTERNAL"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
				code = "INVALID_BODY"
			}
			msg := fe.Message
			if fe.Code >= fiber.StatusInternalServerError {
				msg = internalMessage
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("username", GetUsername(c)).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage})
	}
}
