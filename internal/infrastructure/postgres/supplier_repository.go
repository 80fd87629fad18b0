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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, x *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO suppliers (id, name, contact_info, created_at) VALUES ($1, $2, $3, $4)`,
		x.ID, x.Name, x.ContactInfo, x.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var x entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT id, name, contact_info, created_at FROM suppliers WHERE id = $1`, id,
	).Scan(&x.ID, &x.Name, &x.ContactInfo, &x.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &x, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, contact_info, created_at FROM suppliers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Supplier
	for rows.Next() {
		var x entity.Supplier
		if err := rows.Scan(&x.ID, &x.Name, &x.ContactInfo, &x.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, &x)
	}
	return out, rows.Err()
}

func (r *SupplierRepo) Update(ctx context.Context, x *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `UPDATE suppliers SET name = $2, contact_info = $3 WHERE id = $1`, x.ID, x.Name, x.ContactInfo)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "suppliers", id)
}

func (r *SupplierRepo) Lock(ctx context.Context, id string) (bool, error) {
	return lockByID(ctx, r.q, "suppliers", id)
}

// CountUsage productos y compras que referencian al proveedor.
func (r *SupplierRepo) CountUsage(ctx context.Context, id string) (int, error) {
	return countQuery(ctx, r.q, `
		SELECT (SELECT COUNT(*) FROM products WHERE supplier_id = $1)
		     + (SELECT COUNT(*) FROM purchases WHERE supplier_id = $1)`, id)
}
