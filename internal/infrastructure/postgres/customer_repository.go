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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(ctx context.Context, x *entity.Customer) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO customers (id, name, contact_info, created_at) VALUES ($1, $2, $3, $4)`,
		x.ID, x.Name, x.ContactInfo, x.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var x entity.Customer
	err := r.q.QueryRow(ctx,
		`SELECT id, name, contact_info, created_at FROM customers WHERE id = $1`, id,
	).Scan(&x.ID, &x.Name, &x.ContactInfo, &x.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &x, nil
}

func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, contact_info, created_at FROM customers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Customer
	for rows.Next() {
		var x entity.Customer
		if err := rows.Scan(&x.ID, &x.Name, &x.ContactInfo, &x.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &x)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) Update(ctx context.Context, x *entity.Customer) error {
	cmd, err := r.q.Exec(ctx, `UPDATE customers SET name = $2, contact_info = $3 WHERE id = $1`, x.ID, x.Name, x.ContactInfo)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "customers", id)
}

func (r *CustomerRepo) Lock(ctx context.Context, id string) (bool, error) {
	return lockByID(ctx, r.q, "customers", id)
}

// CountUsage ventas del cliente.
func (r *CustomerRepo) CountUsage(ctx context.Context, id string) (int, error) {
	return countQuery(ctx, r.q, `SELECT COUNT(*) FROM sales WHERE customer_id = $1`, id)
}
