package repository

import (
	"context"

	"github.com/jhoicas/inventory-manager/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) (bool, error)
	// CountUsage cuenta productos y compras que referencian al proveedor.
	CountUsage(ctx context.Context, id string) (int, error)
}
