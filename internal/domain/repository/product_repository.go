package repository

import (
	"context"

	"github.com/jhoicas/inventory-manager/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe; Update y Delete devuelven domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetView(ctx context.Context, id string) (*entity.ProductView, error)
	List(ctx context.Context) ([]*entity.ProductView, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// Lock bloquea la fila (SELECT ... FOR UPDATE) dentro de una tx. false si no existe.
	Lock(ctx context.Context, id string) (bool, error)
	// CountUsage cuenta líneas de venta y compra que referencian el producto.
	CountUsage(ctx context.Context, id string) (int, error)
}

// StockRepository operaciones de stock usadas por el motor de posteo (siempre dentro de una tx).
type StockRepository interface {
	// QuantityForUpdate lee y bloquea la cantidad actual. found=false si el producto no existe.
	QuantityForUpdate(ctx context.Context, productID string) (qty int, found bool, err error)
	// Decrement resta n solo si quantity >= n. false si la condición no se cumplió.
	Decrement(ctx context.Context, productID string, n int) (bool, error)
	// Increment suma n al stock. false si el producto no existe.
	Increment(ctx context.Context, productID string, n int) (bool, error)
}
