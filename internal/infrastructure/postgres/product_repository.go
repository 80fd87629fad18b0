package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.StockRepository   = (*ProductRepo)(nil)
)

// ProductRepo implementación de ProductRepository y StockRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.name, p.description, p.quantity, p.price, p.category_id, p.supplier_id, p.created_at, p.updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, quantity, price, category_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Quantity, product.Price,
		product.CategoryID, product.SupplierID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return mapProductWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

const productViewQuery = `
	SELECT ` + productColumns + `, c.name, s.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// GetView obtiene un producto con nombres de categoría y proveedor.
func (r *ProductRepo) GetView(ctx context.Context, id string) (*entity.ProductView, error) {
	v, err := scanProductView(r.q.QueryRow(ctx, productViewQuery+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product view: %w", err)
	}
	return v, nil
}

// List lista todos los productos en orden de creación.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.ProductView, error) {
	rows, err := r.q.Query(ctx, productViewQuery+` ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.ProductView
	for rows.Next() {
		v, err := scanProductView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListByCategory productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return r.listWhere(ctx, `p.category_id = $1`, categoryID)
}

// ListBySupplier productos de un proveedor.
func (r *ProductRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Product, error) {
	return r.listWhere(ctx, `p.supplier_id = $1`, supplierID)
}

func (r *ProductRepo) listWhere(ctx context.Context, cond string, arg string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products p WHERE `+cond+` ORDER BY p.name`, arg)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update actualiza un producto existente. domain.ErrNotFound si no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, quantity = $4, price = $5, category_id = $6, supplier_id = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Quantity, product.Price,
		product.CategoryID, product.SupplierID, product.UpdatedAt,
	)
	if err != nil {
		return mapProductWriteError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. La FK de las líneas de venta/compra es el respaldo del chequeo de uso.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "products", id)
}

// Lock bloquea la fila del producto hasta el fin de la tx.
func (r *ProductRepo) Lock(ctx context.Context, id string) (bool, error) {
	return lockByID(ctx, r.q, "products", id)
}

// CountUsage cuenta líneas de venta y de compra del producto.
func (r *ProductRepo) CountUsage(ctx context.Context, id string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM sale_items WHERE product_id = $1)
		     + (SELECT COUNT(*) FROM purchase_items WHERE product_id = $1)`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count product usage: %w", err)
	}
	return n, nil
}

// QuantityForUpdate lee el stock y bloquea la fila (SELECT ... FOR UPDATE).
func (r *ProductRepo) QuantityForUpdate(ctx context.Context, productID string) (int, bool, error) {
	var qty int
	err := r.q.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("lock stock: %w", err)
	}
	return qty, true, nil
}

// Decrement resta n solo si hay stock suficiente; el stock nunca queda negativo.
func (r *ProductRepo) Decrement(ctx context.Context, productID string, n int) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2`, productID, n)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Increment suma n al stock.
func (r *ProductRepo) Increment(ctx context.Context, productID string, n int) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1`, productID, n)
	if err != nil {
		return false, fmt.Errorf("increment stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanProductView(row pgx.Row) (*entity.ProductView, error) {
	var v entity.ProductView
	err := row.Scan(
		&v.ID, &v.Name, &v.Description, &v.Quantity, &v.Price, &v.CategoryID, &v.SupplierID, &v.CreatedAt, &v.UpdatedAt,
		&v.CategoryName, &v.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func mapProductWriteError(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: categoría o proveedor inexistente", domain.ErrInvalidInput)
	case isCheckViolation(err):
		return fmt.Errorf("%w: quantity y price deben ser >= 0", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
