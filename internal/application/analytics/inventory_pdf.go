package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRow fila del reporte de inventario valorizado.
type InventoryRow struct {
	Name     string
	Category string
	Supplier string
	Quantity int
	Price    decimal.Decimal
	Value    decimal.Decimal // Quantity × Price
}

// InventoryPDFGenerator renderiza el reporte de inventario (implementación en infrastructure/pdf).
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, rows []InventoryRow, total decimal.Decimal, generatedAt time.Time) ([]byte, error)
}

// ErrPDFUnavailable no hay generador de PDF configurado.
var ErrPDFUnavailable = errors.New("generador de PDF no configurado")

// InventoryPDF stock y valorización por producto, ordenado como el listado de productos.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, ErrPDFUnavailable
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]InventoryRow, 0, len(products))
	total := decimal.Zero
	for _, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
		total = total.Add(value)
		category := sinCategoria
		if p.CategoryName != nil {
			category = *p.CategoryName
		}
		rows = append(rows, InventoryRow{
			Name:     p.Name,
			Category: category,
			Supplier: deref(p.SupplierName),
			Quantity: p.Quantity,
			Price:    p.Price,
			Value:    value,
		})
	}
	return uc.pdf.GenerateInventoryPDF(ctx, rows, total, uc.now())
}
