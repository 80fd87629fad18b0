package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea de venta o compra.
type LineItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PostSaleRequest venta: cliente, fecha (YYYY-MM-DD) y 1..N líneas.
type PostSaleRequest struct {
	CustomerID string            `json:"customer_id"`
	SaleDate   string            `json:"sale_date"`
	Items      []LineItemRequest `json:"items"`
}

// PostPurchaseRequest compra: proveedor, fecha (YYYY-MM-DD) y 1..N líneas.
type PostPurchaseRequest struct {
	SupplierID   string            `json:"supplier_id"`
	PurchaseDate string            `json:"purchase_date"`
	Items        []LineItemRequest `json:"items"`
}

// LineItemResponse línea registrada con su total.
type LineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// PostSaleResponse resultado de registrar una venta.
type PostSaleResponse struct {
	Success     bool               `json:"success"`
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	SaleDate    string             `json:"sale_date"`
	Items       []LineItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}

// PostPurchaseResponse resultado de registrar una compra.
type PostPurchaseResponse struct {
	Success      bool               `json:"success"`
	ID           string             `json:"id"`
	SupplierID   string             `json:"supplier_id"`
	PurchaseDate string             `json:"purchase_date"`
	Items        []LineItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
}

// SaleSummaryResponse fila del listado de ventas.
type SaleSummaryResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	SaleDate     string          `json:"sale_date"`
	ItemsCount   int             `json:"items_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// SaleDetailResponse venta con sus líneas.
type SaleDetailResponse struct {
	SaleSummaryResponse
	Items []LineItemResponse `json:"items"`
}

// PurchaseSummaryResponse fila del listado de compras.
type PurchaseSummaryResponse struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	PurchaseDate string          `json:"purchase_date"`
	ItemsCount   int             `json:"items_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// PurchaseDetailResponse compra con sus líneas.
type PurchaseDetailResponse struct {
	PurchaseSummaryResponse
	Items []LineItemResponse `json:"items"`
}
