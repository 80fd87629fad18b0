package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
)

// lineTables nombres de tablas y columnas de una cabecera con líneas (ventas o compras).
type lineTables struct {
	header        string // sales | purchases
	items         string // sale_items | purchase_items
	itemFK        string // sale_id | purchase_id
	dateCol       string // sale_date | purchase_date
	counterpart   string // customers | suppliers
	counterpartFK string // customer_id | supplier_id
}

var (
	saleTables     = lineTables{"sales", "sale_items", "sale_id", "sale_date", "customers", "customer_id"}
	purchaseTables = lineTables{"purchases", "purchase_items", "purchase_id", "purchase_date", "suppliers", "supplier_id"}
)

// summaryQuery cabecera + nombre de la contraparte + conteo y total de líneas.
func (t lineTables) summaryQuery(where, tail string) string {
	return `
		SELECT h.id, h.` + t.counterpartFK + `, c.name, h.` + t.dateCol + `,
		       COUNT(i.id), COALESCE(SUM(i.quantity * i.price), 0)
		FROM ` + t.header + ` h
		JOIN ` + t.counterpart + ` c ON c.id = h.` + t.counterpartFK + `
		LEFT JOIN ` + t.items + ` i ON i.` + t.itemFK + ` = h.id
		` + where + `
		GROUP BY h.id, c.name
		ORDER BY h.` + t.dateCol + ` DESC, h.created_at DESC
		` + tail
}

type lineRepo struct {
	q Querier
	t lineTables
}

func (r lineRepo) addItem(ctx context.Context, item *entity.LineItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO `+r.t.items+` (id, `+r.t.itemFK+`, product_id, quantity, price) VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.ParentID, item.ProductID, item.Quantity, item.Price,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.StockError{Err: domain.ErrNotFound, ProductID: item.ProductID}
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: quantity > 0 y price >= 0", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert %s: %w", r.t.items, err)
	}
	return nil
}

func (r lineRepo) getByID(ctx context.Context, id string) (*entity.TransactionSummary, error) {
	s, err := scanSummary(r.q.QueryRow(ctx, r.t.summaryQuery(`WHERE h.id = $1`, ""), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.t.header, err)
	}
	return s, nil
}

func (r lineRepo) items(ctx context.Context, parentID string) ([]*entity.LineItemView, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.`+r.t.itemFK+`, i.product_id, i.quantity, i.price, p.name
		FROM `+r.t.items+` i
		JOIN products p ON p.id = i.product_id
		WHERE i.`+r.t.itemFK+` = $1
		ORDER BY p.name, i.id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.items, err)
	}
	defer rows.Close()
	var out []*entity.LineItemView
	for rows.Next() {
		var v entity.LineItemView
		if err := rows.Scan(&v.ID, &v.ParentID, &v.ProductID, &v.Quantity, &v.Price, &v.ProductName); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.items, err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// list limit <= 0 devuelve todas.
func (r lineRepo) list(ctx context.Context, limit int) ([]*entity.TransactionSummary, error) {
	tail := ""
	if limit > 0 {
		tail = "LIMIT " + strconv.Itoa(limit)
	}
	return r.query(ctx, r.t.summaryQuery("", tail))
}

func (r lineRepo) listByCounterpart(ctx context.Context, counterpartID string) ([]*entity.TransactionSummary, error) {
	return r.query(ctx, r.t.summaryQuery(`WHERE h.`+r.t.counterpartFK+` = $1`, ""), counterpartID)
}

func (r lineRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.TransactionSummary, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.header, err)
	}
	defer rows.Close()
	var out []*entity.TransactionSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.header, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSummary(row pgx.Row) (*entity.TransactionSummary, error) {
	var s entity.TransactionSummary
	if err := row.Scan(&s.ID, &s.CounterpartID, &s.CounterpartName, &s.Date, &s.ItemsCount, &s.TotalAmount); err != nil {
		return nil, err
	}
	return &s, nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

// SaleRepo persistencia de ventas sobre PostgreSQL (pool o tx).
type SaleRepo struct {
	lineRepo
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{lineRepo{q: q, t: saleTables}}
}

// Create inserta la cabecera. Cliente inexistente → domain.ErrNotFound.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (id, customer_id, sale_date, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, sale.CustomerID, sale.SaleDate, nullable(sale.CreatedBy), sale.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, sale.CustomerID)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) AddItem(ctx context.Context, item *entity.LineItem) error {
	return r.addItem(ctx, item)
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.TransactionSummary, error) {
	return r.getByID(ctx, id)
}

func (r *SaleRepo) Items(ctx context.Context, saleID string) ([]*entity.LineItemView, error) {
	return r.items(ctx, saleID)
}

func (r *SaleRepo) List(ctx context.Context, limit int) ([]*entity.TransactionSummary, error) {
	return r.list(ctx, limit)
}

func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.TransactionSummary, error) {
	return r.listByCounterpart(ctx, customerID)
}

// ── Compras ──────────────────────────────────────────────────────────────────

// PurchaseRepo persistencia de compras sobre PostgreSQL (pool o tx).
type PurchaseRepo struct {
	lineRepo
}

// NewPurchaseRepository construye el adaptador de compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{lineRepo{q: q, t: purchaseTables}}
}

// Create inserta la cabecera. Proveedor inexistente → domain.ErrNotFound.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchases (id, supplier_id, purchase_date, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.SupplierID, p.PurchaseDate, nullable(p.CreatedBy), p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, p.SupplierID)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) AddItem(ctx context.Context, item *entity.LineItem) error {
	return r.addItem(ctx, item)
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.TransactionSummary, error) {
	return r.getByID(ctx, id)
}

func (r *PurchaseRepo) Items(ctx context.Context, purchaseID string) ([]*entity.LineItemView, error) {
	return r.items(ctx, purchaseID)
}

func (r *PurchaseRepo) List(ctx context.Context, limit int) ([]*entity.TransactionSummary, error) {
	return r.list(ctx, limit)
}

func (r *PurchaseRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.TransactionSummary, error) {
	return r.listByCounterpart(ctx, supplierID)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
