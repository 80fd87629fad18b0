package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("usuario o contraseña inválidos")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya existe")
	ErrInUse              = errors.New("el recurso está en uso")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// StockError detalla el fallo de una línea de venta o compra.
// Envuelve ErrNotFound o ErrInsufficientStock (usar errors.Is).
type StockError struct {
	Err       error
	ProductID string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	if errors.Is(e.Err, ErrNotFound) {
		return fmt.Sprintf("producto %s no encontrado", e.ProductID)
	}
	return fmt.Sprintf("stock insuficiente para el producto %s. Disponible: %d, solicitado: %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return e.Err }
