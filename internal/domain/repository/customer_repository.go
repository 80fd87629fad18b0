package repository

import (
	"context"

	"github.com/jhoicas/inventory-manager/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) (bool, error)
	// CountUsage cuenta ventas del cliente.
	CountUsage(ctx context.Context, id string) (int, error)
}
