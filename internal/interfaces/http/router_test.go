package http_test

import (
	"context"
	"maps"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventory-manager/internal/application/analytics"
	"github.com/jhoicas/inventory-manager/internal/application/inventory"
	"github.com/jhoicas/inventory-manager/internal/application/usecase"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
	apphttp "github.com/jhoicas/inventory-manager/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base en memoria para el router completo
// ──────────────────────────────────────────────────────────────────────────────

// memDB estado compartido; RunPosting restaura el stock si fn falla.
type memDB struct {
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	purchases map[string]*entity.Purchase
	items     []*entity.LineItem
}

func newMemDB() *memDB {
	return &memDB{
		products:  map[string]*entity.Product{},
		suppliers: map[string]*entity.Supplier{},
		customers: map[string]*entity.Customer{},
		sales:     map[string]*entity.Sale{},
		purchases: map[string]*entity.Purchase{},
	}
}

func (db *memDB) RunPosting(_ context.Context, fn func(
	repository.SaleRepository,
	repository.PurchaseRepository,
	repository.StockRepository,
) error) error {
	stock := make(map[string]int, len(db.products))
	for id, p := range db.products {
		stock[id] = p.Quantity
	}
	sales := maps.Clone(db.sales)
	purchases := maps.Clone(db.purchases)
	nItems := len(db.items)
	if err := fn(&dbSales{db: db}, &dbPurchases{db: db}, dbStock{db}); err != nil {
		for id, q := range stock {
			db.products[id].Quantity = q
		}
		db.sales, db.purchases, db.items = sales, purchases, db.items[:nItems]
		return err
	}
	return nil
}

func (db *memDB) RunCatalog(_ context.Context, fn func(
	repository.ProductRepository,
	repository.CategoryRepository,
	repository.SupplierRepository,
	repository.CustomerRepository,
) error) error {
	return fn(&dbProducts{db: db}, nil, &dbSuppliers{db: db}, &dbCustomers{db: db})
}

type dbProducts struct {
	repository.ProductRepository
	db *memDB
}

func (r *dbProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *dbProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.db.products[id], nil
}

func (r *dbProducts) GetView(_ context.Context, id string) (*entity.ProductView, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return &entity.ProductView{Product: *p}, nil
}

func (r *dbProducts) List(context.Context) ([]*entity.ProductView, error) {
	out := make([]*entity.ProductView, 0, len(r.db.products))
	for _, p := range r.db.products {
		out = append(out, &entity.ProductView{Product: *p})
	}
	return out, nil
}

func (r *dbProducts) Lock(_ context.Context, id string) (bool, error) {
	_, ok := r.db.products[id]
	return ok, nil
}

func (r *dbProducts) CountUsage(_ context.Context, id string) (int, error) {
	n := 0
	for _, it := range r.db.items {
		if it.ProductID == id {
			n++
		}
	}
	return n, nil
}

func (r *dbProducts) Delete(_ context.Context, id string) error {
	delete(r.db.products, id)
	return nil
}

type dbSuppliers struct {
	repository.SupplierRepository
	db *memDB
}

func (r *dbSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	r.db.suppliers[s.ID] = s
	return nil
}

func (r *dbSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return r.db.suppliers[id], nil
}

type dbCustomers struct {
	repository.CustomerRepository
	db *memDB
}

func (r *dbCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.db.customers[c.ID] = c
	return nil
}

func (r *dbCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.db.customers[id], nil
}

type dbSales struct {
	repository.SaleRepository
	db *memDB
}

func (r *dbSales) Create(_ context.Context, s *entity.Sale) error {
	r.db.sales[s.ID] = s
	return nil
}

func (r *dbSales) AddItem(_ context.Context, it *entity.LineItem) error {
	r.db.items = append(r.db.items, it)
	return nil
}

func (r *dbSales) List(context.Context, int) ([]*entity.TransactionSummary, error) {
	out := make([]*entity.TransactionSummary, 0, len(r.db.sales))
	for _, s := range r.db.sales {
		out = append(out, &entity.TransactionSummary{ID: s.ID, CounterpartID: s.CustomerID, Date: s.SaleDate})
	}
	return out, nil
}

type dbPurchases struct {
	repository.PurchaseRepository
	db *memDB
}

func (r *dbPurchases) Create(_ context.Context, p *entity.Purchase) error {
	r.db.purchases[p.ID] = p
	return nil
}

func (r *dbPurchases) AddItem(_ context.Context, it *entity.LineItem) error {
	r.db.items = append(r.db.items, it)
	return nil
}

func (r *dbPurchases) List(context.Context, int) ([]*entity.TransactionSummary, error) {
	return nil, nil
}

type dbStock struct{ db *memDB }

func (s dbStock) QuantityForUpdate(_ context.Context, id string) (int, bool, error) {
	p, ok := s.db.products[id]
	if !ok {
		return 0, false, nil
	}
	return p.Quantity, true, nil
}

func (s dbStock) Decrement(_ context.Context, id string, n int) (bool, error) {
	p, ok := s.db.products[id]
	if !ok || p.Quantity < n {
		return false, nil
	}
	p.Quantity -= n
	return true, nil
}

func (s dbStock) Increment(_ context.Context, id string, n int) (bool, error) {
	p, ok := s.db.products[id]
	if !ok {
		return false, nil
	}
	p.Quantity += n
	return true, nil
}

// buildRouterApp monta Router con todos los casos de uso sobre memDB.
func buildRouterApp(t *testing.T, db *memDB) *fiber.App {
	t.Helper()
	products := &dbProducts{db: db}
	suppliers := &dbSuppliers{db: db}
	customers := &dbCustomers{db: db}
	sales := &dbSales{db: db}
	purchases := &dbPurchases{db: db}
	cats := &memCategories{rows: map[string]*entity.Category{}, usage: map[string]int{}}

	app := newApp()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      newAuthUC(newUsers(t)),
		ProductUC:   usecase.NewProductUseCase(products, cats, suppliers, db),
		CategoryUC:  usecase.NewCategoryUseCase(cats, products, catalogTx{cats}),
		SupplierUC:  usecase.NewSupplierUseCase(suppliers, products, db),
		CustomerUC:  usecase.NewCustomerUseCase(customers, sales, db),
		PostingUC:   inventory.NewPostingUseCase(db, sales, purchases, customers, suppliers, nil, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(nil, sales, purchases, 0),
		ReportUC:    appanalytics.NewReportUseCase(nil, products, sales, purchases, nil),
		SessionTTL:  8 * time.Hour,
	})
	return app
}

func seededDB() *memDB {
	db := newMemDB()
	db.products["p-1"] = &entity.Product{ID: "p-1", Name: "Martillo", Quantity: 3}
	db.customers["k-1"] = &entity.Customer{ID: "k-1", Name: "Ana"}
	db.suppliers["s-1"] = &entity.Supplier{ID: "s-1", Name: "Acme"}
	return db
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas y sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginEsPublico(t *testing.T) {
	app := buildRouterApp(t, seededDB())
	resp := do(t, app, http.MethodPost, "/api/auth/login", `{"username":"pedro","password":"secreta"}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, sessionCookie(resp))
}

func TestRouter_RutasProtegidas_SinSesion401(t *testing.T) {
	app := buildRouterApp(t, seededDB())
	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/sales"},
		{http.MethodPost, "/api/purchases"},
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodPost, "/api/reports/export"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := do(t, app, tc.method, tc.path, `{}`, "")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "UNAUTHORIZED", decode(t, resp)["code"])
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas y compras
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Venta_StockInsuficiente400(t *testing.T) {
	db := seededDB()
	app := buildRouterApp(t, db)
	body := `{"customer_id":"k-1","sale_date":"2024-03-09","items":[{"product_id":"p-1","quantity":5,"price":"19.99"}]}`

	resp := do(t, app, http.MethodPost, "/api/sales", body, tokenFor(t, staffID, "pedro", entity.RoleStaff))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "STOCK", decode(t, resp)["code"])
	assert.Equal(t, 3, db.products["p-1"].Quantity, "el stock no cambia")
	assert.Empty(t, db.items)
	assert.Empty(t, db.sales, "la cabecera también se revierte")
}

func TestRouter_Venta_DescuentaStock201(t *testing.T) {
	db := seededDB()
	app := buildRouterApp(t, db)
	body := `{"customer_id":"k-1","sale_date":"2024-03-09","items":[{"product_id":"p-1","quantity":2,"price":"19.99"}]}`

	resp := do(t, app, http.MethodPost, "/api/sales", body, tokenFor(t, staffID, "pedro", entity.RoleStaff))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode(t, resp)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "39.98", out["total_amount"])
	assert.Equal(t, 1, db.products["p-1"].Quantity)
}

func TestRouter_Compra_ProveedorInexistente404(t *testing.T) {
	db := seededDB()
	app := buildRouterApp(t, db)
	body := `{"supplier_id":"s-x","purchase_date":"2024-03-09","items":[{"product_id":"p-1","quantity":10,"price":"12"}]}`

	resp := do(t, app, http.MethodPost, "/api/purchases", body, tokenFor(t, staffID, "pedro", entity.RoleStaff))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp)["code"])
	assert.Equal(t, 3, db.products["p-1"].Quantity)
}

func TestRouter_Compra_SumaStock201(t *testing.T) {
	db := seededDB()
	app := buildRouterApp(t, db)
	body := `{"supplier_id":"s-1","purchase_date":"2024-03-09","items":[{"product_id":"p-1","quantity":10,"price":"12"}]}`

	resp := do(t, app, http.MethodPost, "/api/purchases", body, tokenFor(t, staffID, "pedro", entity.RoleStaff))
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 13, db.products["p-1"].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo: mutaciones solo admin
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_MutacionesSoloAdmin_Staff403(t *testing.T) {
	app := buildRouterApp(t, seededDB())
	staff := tokenFor(t, staffID, "pedro", entity.RoleStaff)
	cases := []struct{ method, path, body string }{
		{http.MethodDelete, "/api/products/p-1", ""},
		{http.MethodPost, "/api/suppliers", `{"name":"Otro"}`},
		{http.MethodPut, "/api/suppliers/s-1", `{"name":"Otro"}`},
		{http.MethodDelete, "/api/suppliers/s-1", ""},
		{http.MethodPost, "/api/customers", `{"name":"Luis"}`},
		{http.MethodPut, "/api/customers/k-1", `{"name":"Luis"}`},
		{http.MethodDelete, "/api/customers/k-1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := do(t, app, tc.method, tc.path, tc.body, staff)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, "FORBIDDEN", decode(t, resp)["code"])
		})
	}
}

func TestRouter_Admin_CreaProveedorYBorraProducto(t *testing.T) {
	db := seededDB()
	app := buildRouterApp(t, db)
	admin := tokenFor(t, adminID, "maria", entity.RoleAdmin)

	resp := do(t, app, http.MethodPost, "/api/suppliers", `{"name":"Ferretería Sur","contact_info":"sur@example.com"}`, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Ferretería Sur", decode(t, resp)["name"])
	assert.Len(t, db.suppliers, 2)

	resp = do(t, app, http.MethodDelete, "/api/products/p-1", "", admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["success"])
	assert.NotContains(t, db.products, "p-1")
}

func TestRouter_Admin_BorrarProductoVendido400(t *testing.T) {
	db := seededDB()
	db.items = append(db.items, &entity.LineItem{ID: "i-1", ParentID: "v-1", ProductID: "p-1", Quantity: 1})
	app := buildRouterApp(t, db)

	resp := do(t, app, http.MethodDelete, "/api/products/p-1", "", tokenFor(t, adminID, "maria", entity.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "IN_USE", decode(t, resp)["code"])
	assert.Contains(t, db.products, "p-1")
}

func TestRouter_Staff_CreaProducto201(t *testing.T) {
	db := seededDB()
	app := buildRouterApp(t, db)

	resp := do(t, app, http.MethodPost, "/api/products", `{"name":"Tornillo","quantity":100,"price":"0.05"}`,
		tokenFor(t, staffID, "pedro", entity.RoleStaff))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Tornillo", decode(t, resp)["name"])
	assert.Len(t, db.products, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ExportDevuelveHTML(t *testing.T) {
	app := buildRouterApp(t, seededDB())

	resp := do(t, app, http.MethodPost, "/api/reports/export", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/html"))
	html := readBody(t, resp)
	assert.Contains(t, html, `download="products.csv"`)
	assert.Equal(t, 3, strings.Count(html, "data:text/csv"))
}

func TestRouter_ExportCSV_Desconocido400(t *testing.T) {
	app := buildRouterApp(t, seededDB())

	resp := do(t, app, http.MethodGet, "/api/reports/export/users", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, resp)["code"])
}

func TestRouter_InventoryPDF_SinGenerador503(t *testing.T) {
	app := buildRouterApp(t, seededDB())
	resp := do(t, app, http.MethodGet, "/api/reports/inventory.pdf", "", tokenFor(t, staffID, "pedro", entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
