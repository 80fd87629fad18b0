package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardCounts totales del tablero.
type DashboardCounts struct {
	Products  int
	Suppliers int
	Customers int
	LowStock  int
}

// MonthlyAmount total por mes (Month en formato YYYY-MM).
type MonthlyAmount struct {
	Month       string
	TotalAmount decimal.Decimal
}

// TopProduct producto más vendido en un periodo.
type TopProduct struct {
	ProductID     string
	Name          string
	TotalQuantity int
	TotalAmount   decimal.Decimal
}

// CategoryInventory stock y valorización por categoría. Category nil = sin categoría.
type CategoryInventory struct {
	Category      *string
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// TopSupplier proveedor con mayor monto comprado en un periodo.
type TopSupplier struct {
	SupplierID    string
	SupplierName  string
	PurchaseCount int
	TotalAmount   decimal.Decimal
}

// ReportRepository consultas de solo lectura para tablero y reportes.
type ReportRepository interface {
	Counts(ctx context.Context, lowStockThreshold int) (DashboardCounts, error)
	SalesByMonth(ctx context.Context, since time.Time) ([]MonthlyAmount, error)
	PurchasesByMonth(ctx context.Context, since time.Time) ([]MonthlyAmount, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
	InventoryByCategory(ctx context.Context) ([]CategoryInventory, error)
	TopSuppliers(ctx context.Context, since time.Time, limit int) ([]TopSupplier, error)
}
