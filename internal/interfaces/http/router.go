package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-manager/internal/application/analytics"
	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/internal/application/inventory"
	"github.com/jhoicas/inventory-manager/internal/application/usecase"
	"github.com/jhoicas/inventory-manager/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	CustomerUC   *usecase.CustomerUseCase
	PostingUC    *inventory.PostingUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ReportUC     *appanalytics.ReportUseCase
	Log          *logger.Logger
	SecureCookie bool
	SessionTTL   time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login, logout y me son públicos; register solo admin.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log, deps.SecureCookie, deps.SessionTTL)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)
	authGroup.Post("/register", AuthMiddleware(deps.AuthUC), RequireAdmin(deps.AuthUC), authHandler.Register)

	// Rutas protegidas (cookie auth-token o Bearer)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	adminOnly := RequireAdmin(deps.AuthUC)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", adminOnly, customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", adminOnly, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	postingHandler := NewPostingHandler(deps.PostingUC)
	sales := protected.Group("/sales")
	sales.Post("/", postingHandler.PostSale)
	sales.Get("/", postingHandler.ListSales)
	sales.Get("/:id", postingHandler.GetSale)

	purchases := protected.Group("/purchases")
	purchases.Post("/", postingHandler.PostPurchase)
	purchases.Get("/", postingHandler.ListPurchases)
	purchases.Get("/:id", postingHandler.GetPurchase)

	protected.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Post("/export", reportHandler.Export)
	reports.Get("/export/:what", reportHandler.ExportCSV)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
}
