package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventory-manager/internal/application/inventory"
	"github.com/jhoicas/inventory-manager/internal/application/usecase"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.CatalogTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPosting inicia una transacción, ejecuta fn con repos de venta, compra y stock atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunPosting(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx), NewPurchaseRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalog inicia una transacción con los repos del catálogo (borrados con chequeo de uso).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	customers repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewCategoryRepository(tx), NewSupplierRepository(tx), NewCustomerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
