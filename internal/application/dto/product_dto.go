package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto.
// Name, Quantity y Price son obligatorios.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category_id"`
	SupplierID  *string          `json:"supplier_id"`
}

// ProductResponse salida de un producto con nombres de categoría y proveedor.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *string         `json:"category_id"`
	SupplierID   *string         `json:"supplier_id"`
	CategoryName *string         `json:"category_name"`
	SupplierName *string         `json:"supplier_name"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductBrief fila corta de producto en detalles de categoría o proveedor.
type ProductBrief struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
