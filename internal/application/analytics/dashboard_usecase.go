// Package analytics contiene los casos de uso del tablero, los reportes de negocio
// y la exportación de datos (CSV, HTML y PDF).
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

const (
	dashboardRecent = 5  // ventas/compras recientes en el tablero
	DefaultLowStock = 10 // quantity < umbral cuenta como stock bajo
)

// DashboardUseCase genera el tablero principal: totales, stock bajo y movimientos recientes.
//
// Fuente de datos: ReportRepository y los listados de ventas/compras (consultas read-only).
type DashboardUseCase struct {
	reportRepo   repository.ReportRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	lowStock     int
}

// NewDashboardUseCase construye el caso de uso. lowStock <= 0 usa DefaultLowStock.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	lowStock int,
) *DashboardUseCase {
	if lowStock <= 0 {
		lowStock = DefaultLowStock
	}
	return &DashboardUseCase{reportRepo: reportRepo, saleRepo: saleRepo, purchaseRepo: purchaseRepo, lowStock: lowStock}
}

// GetSummary construye el DashboardResponse.
//
// Tres llamadas en paralelo:
//  1. Counts(umbral)       → totales y stock bajo
//  2. Sales.List(5)        → RecentSales
//  3. Purchases.List(5)    → RecentPurchases
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type countsResult struct {
		counts repository.DashboardCounts
		err    error
	}
	type listResult struct {
		rows []*entity.TransactionSummary
		err  error
	}

	countsCh := make(chan countsResult, 1)
	salesCh := make(chan listResult, 1)
	purchasesCh := make(chan listResult, 1)

	go func() {
		c, err := uc.reportRepo.Counts(ctx, uc.lowStock)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		rows, err := uc.saleRepo.List(ctx, dashboardRecent)
		salesCh <- listResult{rows, err}
	}()
	go func() {
		rows, err := uc.purchaseRepo.List(ctx, dashboardRecent)
		purchasesCh <- listResult{rows, err}
	}()

	counts := <-countsCh
	sales := <-salesCh
	purchases := <-purchasesCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", counts.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", sales.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: compras recientes: %w", purchases.err)
	}

	out := &dto.DashboardResponse{
		TotalProducts:    counts.counts.Products,
		TotalSuppliers:   counts.counts.Suppliers,
		TotalCustomers:   counts.counts.Customers,
		LowStockProducts: counts.counts.LowStock,
		LowStockLimit:    uc.lowStock,
		RecentSales:      make([]dto.SaleSummaryResponse, 0, len(sales.rows)),
		RecentPurchases:  make([]dto.PurchaseSummaryResponse, 0, len(purchases.rows)),
	}
	for _, s := range sales.rows {
		out.RecentSales = append(out.RecentSales, dto.NewSaleSummary(s))
	}
	for _, p := range purchases.rows {
		out.RecentPurchases = append(out.RecentPurchases, dto.NewPurchaseSummary(p))
	}
	return out, nil
}
