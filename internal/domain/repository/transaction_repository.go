package repository

import (
	"context"

	"github.com/jhoicas/inventory-manager/internal/domain/entity"
)

// SaleRepository persistencia de ventas y sus líneas.
// List con limit <= 0 devuelve todas, ordenadas por fecha descendente.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	AddItem(ctx context.Context, item *entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.TransactionSummary, error)
	Items(ctx context.Context, saleID string) ([]*entity.LineItemView, error)
	List(ctx context.Context, limit int) ([]*entity.TransactionSummary, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.TransactionSummary, error)
}

// PurchaseRepository persistencia de compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	AddItem(ctx context.Context, item *entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.TransactionSummary, error)
	Items(ctx context.Context, purchaseID string) ([]*entity.LineItemView, error)
	List(ctx context.Context, limit int) ([]*entity.TransactionSummary, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.TransactionSummary, error)
}
