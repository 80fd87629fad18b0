package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only del tablero y reportes: solo agregaciones (GROUP BY).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio. Pasar pool (no se usa en tx).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Counts totales del tablero; stock bajo = quantity < threshold.
func (r *ReportRepo) Counts(ctx context.Context, threshold int) (repository.DashboardCounts, error) {
	var c repository.DashboardCounts
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM products),
		       (SELECT COUNT(*) FROM suppliers),
		       (SELECT COUNT(*) FROM customers),
		       (SELECT COUNT(*) FROM products WHERE quantity < $1)`, threshold,
	).Scan(&c.Products, &c.Suppliers, &c.Customers, &c.LowStock)
	if err != nil {
		return c, fmt.Errorf("dashboard counts: %w", err)
	}
	return c, nil
}

// SalesByMonth total vendido por mes desde since.
func (r *ReportRepo) SalesByMonth(ctx context.Context, since time.Time) ([]repository.MonthlyAmount, error) {
	return r.monthly(ctx, saleTables, since)
}

// PurchasesByMonth total comprado por mes desde since.
func (r *ReportRepo) PurchasesByMonth(ctx context.Context, since time.Time) ([]repository.MonthlyAmount, error) {
	return r.monthly(ctx, purchaseTables, since)
}

func (r *ReportRepo) monthly(ctx context.Context, t lineTables, since time.Time) ([]repository.MonthlyAmount, error) {
	query := `
		SELECT to_char(date_trunc('month', h.` + t.dateCol + `), 'YYYY-MM') AS month,
		       COALESCE(SUM(i.quantity * i.price), 0)
		FROM ` + t.header + ` h
		JOIN ` + t.items + ` i ON i.` + t.itemFK + ` = h.id
		WHERE h.` + t.dateCol + ` >= $1
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s by month: %w", t.header, err)
	}
	defer rows.Close()
	var out []repository.MonthlyAmount
	for rows.Next() {
		var m repository.MonthlyAmount
		if err := rows.Scan(&m.Month, &m.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TopProducts productos con mayor cantidad vendida desde since.
func (r *ReportRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]repository.TopProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, SUM(si.quantity), SUM(si.quantity * si.price)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.sale_date >= $1
		GROUP BY p.id, p.name
		ORDER BY SUM(si.quantity) DESC, p.name
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var out []repository.TopProduct
	for rows.Next() {
		var p repository.TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.TotalQuantity, &p.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Agrupa por id: dos categorías con el mismo nombre son filas distintas.
const inventoryByCategoryQuery = `
		SELECT c.name, COALESCE(SUM(p.quantity), 0), COALESCE(SUM(p.quantity * p.price), 0)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY c.id, c.name
		ORDER BY c.name NULLS LAST, c.id`

// InventoryByCategory stock y valor (quantity × price) por categoría; NULL = sin categoría.
func (r *ReportRepo) InventoryByCategory(ctx context.Context) ([]repository.CategoryInventory, error) {
	rows, err := r.q.Query(ctx, inventoryByCategoryQuery)
	if err != nil {
		return nil, fmt.Errorf("inventory by category: %w", err)
	}
	defer rows.Close()
	var out []repository.CategoryInventory
	for rows.Next() {
		var c repository.CategoryInventory
		if err := rows.Scan(&c.Category, &c.TotalQuantity, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category inventory: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TopSuppliers proveedores con mayor monto comprado desde since.
func (r *ReportRepo) TopSuppliers(ctx context.Context, since time.Time, limit int) ([]repository.TopSupplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT su.id, su.name, COUNT(DISTINCT pu.id), SUM(pi.quantity * pi.price)
		FROM purchases pu
		JOIN suppliers su ON su.id = pu.supplier_id
		JOIN purchase_items pi ON pi.purchase_id = pu.id
		WHERE pu.purchase_date >= $1
		GROUP BY su.id, su.name
		ORDER BY SUM(pi.quantity * pi.price) DESC, su.name
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top suppliers: %w", err)
	}
	defer rows.Close()
	var out []repository.TopSupplier
	for rows.Next() {
		var s repository.TopSupplier
		if err := rows.Scan(&s.SupplierID, &s.SupplierName, &s.PurchaseCount, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan top supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
