package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity es el stock disponible (>= 0); solo lo mueven ventas, compras o la edición explícita.
type Product struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	Price       decimal.Decimal // precio unitario de referencia (>= 0)
	CategoryID  *string         // nil = sin categoría
	SupplierID  *string         // nil = sin proveedor
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductView producto con los nombres de categoría y proveedor resueltos (LEFT JOIN).
type ProductView struct {
	Product
	CategoryName *string
	SupplierName *string
}
