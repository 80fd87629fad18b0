package dto

import "time"

// CategoryRequest entrada para crear/actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryDetailResponse categoría con sus productos.
type CategoryDetailResponse struct {
	CategoryResponse
	Products []ProductBrief `json:"products"`
}

// ContactRequest entrada para proveedores y clientes.
type ContactRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplierDetailResponse proveedor con los productos que suministra.
type SupplierDetailResponse struct {
	SupplierResponse
	Products []ProductBrief `json:"products"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerDetailResponse cliente con su historial de ventas.
type CustomerDetailResponse struct {
	CustomerResponse
	Sales []SaleSummaryResponse `json:"sales"`
}
