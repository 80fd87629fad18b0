package repository

import (
	"context"

	"github.com/jhoicas/inventory-manager/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) (bool, error)
	// CountUsage cuenta productos de la categoría.
	CountUsage(ctx context.Context, id string) (int, error)
}
