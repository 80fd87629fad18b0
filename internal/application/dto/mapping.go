package dto

import "github.com/jhoicas/inventory-manager/internal/domain/entity"

// NewSaleSummary convierte una fila de listado en su DTO de venta.
func NewSaleSummary(t *entity.TransactionSummary) SaleSummaryResponse {
	return SaleSummaryResponse{
		ID:           t.ID,
		CustomerID:   t.CounterpartID,
		CustomerName: t.CounterpartName,
		SaleDate:     t.Date.Format(DateLayout),
		ItemsCount:   t.ItemsCount,
		TotalAmount:  t.TotalAmount,
	}
}

// NewPurchaseSummary convierte una fila de listado en su DTO de compra.
func NewPurchaseSummary(t *entity.TransactionSummary) PurchaseSummaryResponse {
	return PurchaseSummaryResponse{
		ID:           t.ID,
		SupplierID:   t.CounterpartID,
		SupplierName: t.CounterpartName,
		PurchaseDate: t.Date.Format(DateLayout),
		ItemsCount:   t.ItemsCount,
		TotalAmount:  t.TotalAmount,
	}
}

// NewLineItem convierte una línea con nombre de producto.
func NewLineItem(l *entity.LineItemView) LineItemResponse {
	return LineItemResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		Price:       l.Price,
		Total:       l.Total(),
	}
}

// NewProductBrief fila corta de producto.
func NewProductBrief(p *entity.Product) ProductBrief {
	return ProductBrief{ID: p.ID, Name: p.Name, Quantity: p.Quantity, Price: p.Price}
}
