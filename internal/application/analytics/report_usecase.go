package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

const (
	monthlyWindow = 6 // meses en las series de ventas y compras (incluye el actual)
	rankingMonths = 3 // ventana de los rankings de productos y proveedores
	rankingLimit  = 5
)

// sinCategoria etiqueta del grupo de productos sin categoría.
const sinCategoria = "Sin categoría"

// ReportUseCase reportes de negocio y exportaciones.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	pdf          InventoryPDFGenerator
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se expone el PDF.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	pdf InventoryPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		pdf:          pdf,
		now:          time.Now,
	}
}

// Summary series mensuales (últimos 6 meses) y rankings (últimos 3 meses).
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.ReportSummaryResponse, error) {
	now := uc.now()
	monthsSince := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(monthlyWindow - 1), 0)
	rankingSince := now.AddDate(0, -rankingMonths, 0)

	sales, err := uc.reportRepo.SalesByMonth(ctx, monthsSince)
	if err != nil {
		return nil, fmt.Errorf("reportes: ventas por mes: %w", err)
	}
	purchases, err := uc.reportRepo.PurchasesByMonth(ctx, monthsSince)
	if err != nil {
		return nil, fmt.Errorf("reportes: compras por mes: %w", err)
	}
	top, err := uc.reportRepo.TopProducts(ctx, rankingSince, rankingLimit)
	if err != nil {
		return nil, fmt.Errorf("reportes: top productos: %w", err)
	}
	byCategory, err := uc.reportRepo.InventoryByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: inventario por categoría: %w", err)
	}
	suppliers, err := uc.reportRepo.TopSuppliers(ctx, rankingSince, rankingLimit)
	if err != nil {
		return nil, fmt.Errorf("reportes: top proveedores: %w", err)
	}

	out := &dto.ReportSummaryResponse{
		SalesByMonth:        toMonthly(sales),
		PurchasesByMonth:    toMonthly(purchases),
		TopProducts:         make([]dto.TopProductDTO, 0, len(top)),
		InventoryByCategory: make([]dto.CategoryInventoryDTO, 0, len(byCategory)),
		TopSuppliers:        make([]dto.TopSupplierDTO, 0, len(suppliers)),
	}
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID: p.ProductID, Name: p.Name, TotalQuantity: p.TotalQuantity, TotalAmount: p.TotalAmount,
		})
	}
	for _, c := range byCategory {
		name := sinCategoria
		if c.Category != nil {
			name = *c.Category
		}
		out.InventoryByCategory = append(out.InventoryByCategory, dto.CategoryInventoryDTO{
			Category: name, TotalQuantity: c.TotalQuantity, TotalValue: c.TotalValue,
		})
	}
	for _, s := range suppliers {
		out.TopSuppliers = append(out.TopSuppliers, dto.TopSupplierDTO{
			SupplierID: s.SupplierID, SupplierName: s.SupplierName, PurchaseCount: s.PurchaseCount, TotalAmount: s.TotalAmount,
		})
	}
	return out, nil
}

func toMonthly(in []repository.MonthlyAmount) []dto.MonthlyAmountDTO {
	out := make([]dto.MonthlyAmountDTO, 0, len(in))
	for _, m := range in {
		out = append(out, dto.MonthlyAmountDTO{Month: m.Month, TotalAmount: m.TotalAmount})
	}
	return out
}
