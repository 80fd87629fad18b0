package dto

import "github.com/shopspring/decimal"

// DashboardResponse tablero principal.
type DashboardResponse struct {
	TotalProducts    int                       `json:"total_products"`
	TotalSuppliers   int                       `json:"total_suppliers"`
	TotalCustomers   int                       `json:"total_customers"`
	LowStockProducts int                       `json:"low_stock_products"`
	LowStockLimit    int                       `json:"low_stock_threshold"`
	RecentSales      []SaleSummaryResponse     `json:"recent_sales"`
	RecentPurchases  []PurchaseSummaryResponse `json:"recent_purchases"`
}

// MonthlyAmountDTO total por mes (YYYY-MM).
type MonthlyAmountDTO struct {
	Month       string          `json:"month"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// TopProductDTO producto más vendido.
type TopProductDTO struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// CategoryInventoryDTO stock y valorización por categoría.
type CategoryInventoryDTO struct {
	Category      string          `json:"category"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// TopSupplierDTO proveedor con mayor monto comprado.
type TopSupplierDTO struct {
	SupplierID    string          `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	PurchaseCount int             `json:"purchase_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// ReportSummaryResponse reportes: series mensuales y rankings.
type ReportSummaryResponse struct {
	SalesByMonth        []MonthlyAmountDTO     `json:"sales_by_month"`
	PurchasesByMonth    []MonthlyAmountDTO     `json:"purchases_by_month"`
	TopProducts         []TopProductDTO        `json:"top_products"`
	InventoryByCategory []CategoryInventoryDTO `json:"inventory_by_category"`
	TopSuppliers        []TopSupplierDTO       `json:"top_suppliers"`
}
