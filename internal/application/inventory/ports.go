package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso. Garantiza atomicidad del posteo.
type TxRunner interface {
	RunPosting(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// Tipos de evento de stock.
const (
	EventSale     = "sale"
	EventPurchase = "purchase"
)

// StockEvent movimiento de stock confirmado (una línea de venta o compra).
// Delta es negativo en ventas y positivo en compras.
type StockEvent struct {
	Kind          string    `json:"kind"`
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	Delta         int       `json:"delta"`
	UserID        string    `json:"user_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher publica eventos después del commit. Sus fallos no revierten el posteo.
type EventPublisher interface {
	Publish(ctx context.Context, events []StockEvent) error
}
