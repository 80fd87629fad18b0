package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Sus líneas se crean una vez y no se modifican.
type Sale struct {
	ID         string
	CustomerID string
	SaleDate   time.Time
	CreatedBy  string // UserID
	CreatedAt  time.Time
}

// Purchase cabecera de una compra a proveedor.
type Purchase struct {
	ID           string
	SupplierID   string
	PurchaseDate time.Time
	CreatedBy    string
	CreatedAt    time.Time
}

// LineItem línea de venta o compra: producto, cantidad y precio unitario pactado.
type LineItem struct {
	ID        string
	ParentID  string // SaleID o PurchaseID
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Total devuelve quantity × price.
func (l LineItem) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TransactionSummary fila de listado de ventas o compras.
type TransactionSummary struct {
	ID              string
	CounterpartID   string
	CounterpartName string
	Date            time.Time
	ItemsCount      int
	TotalAmount     decimal.Decimal
}

// LineItemView línea con el nombre del producto.
type LineItemView struct {
	LineItem
	ProductName string
}
