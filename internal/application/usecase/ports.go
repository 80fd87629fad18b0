package usecase

import (
	"context"

	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn en una transacción con repositorios atados a ella.
// Los borrados con chequeo de uso corren aquí para que el chequeo y el DELETE vean el mismo estado.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		products repository.ProductRepository,
		categories repository.CategoryRepository,
		suppliers repository.SupplierRepository,
		customers repository.CustomerRepository,
	) error) error
}

// guardedDelete bloquea la fila, verifica que no esté referenciada y la borra.
func guardedDelete(
	ctx context.Context,
	id string,
	lock func(context.Context, string) (bool, error),
	countUsage func(context.Context, string) (int, error),
	del func(context.Context, string) error,
) error {
	found, err := lock(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	n, err := countUsage(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	return del(ctx, id)
}
