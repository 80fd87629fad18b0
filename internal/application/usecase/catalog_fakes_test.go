package usecase

import (
	"context"

	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

// store estado compartido por los fakes; usage simula las referencias de otras tablas.
type store struct {
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	suppliers  map[string]*entity.Supplier
	customers  map[string]*entity.Customer
	usage      map[string]int
	sales      map[string][]*entity.TransactionSummary
}

func newStore() *store {
	return &store{
		products:   map[string]*entity.Product{},
		categories: map[string]*entity.Category{},
		suppliers:  map[string]*entity.Supplier{},
		customers:  map[string]*entity.Customer{},
		usage:      map[string]int{},
		sales:      map[string][]*entity.TransactionSummary{},
	}
}

func (s *store) RunCatalog(_ context.Context, fn func(
	repository.ProductRepository,
	repository.CategoryRepository,
	repository.SupplierRepository,
	repository.CustomerRepository,
) error) error {
	return fn(&fakeProducts{s}, &fakeCategories{s}, &fakeSuppliers{s}, &fakeCustomers{s})
}

type fakeProducts struct{ s *store }

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.s.products[p.ID] = &cp
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := f.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProducts) GetView(ctx context.Context, id string) (*entity.ProductView, error) {
	p, _ := f.GetByID(ctx, id)
	if p == nil {
		return nil, nil
	}
	v := &entity.ProductView{Product: *p}
	if p.CategoryID != nil {
		if c, ok := f.s.categories[*p.CategoryID]; ok {
			v.CategoryName = &c.Name
		}
	}
	if p.SupplierID != nil {
		if sp, ok := f.s.suppliers[*p.SupplierID]; ok {
			v.SupplierName = &sp.Name
		}
	}
	return v, nil
}

func (f *fakeProducts) List(ctx context.Context) ([]*entity.ProductView, error) {
	out := make([]*entity.ProductView, 0, len(f.s.products))
	for id := range f.s.products {
		v, _ := f.GetView(ctx, id)
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeProducts) ListByCategory(_ context.Context, categoryID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.s.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) ListBySupplier(_ context.Context, supplierID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.s.products {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	if _, ok := f.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.s.products[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.products, id)
	return nil
}

func (f *fakeProducts) Lock(_ context.Context, id string) (bool, error) {
	_, ok := f.s.products[id]
	return ok, nil
}

func (f *fakeProducts) CountUsage(_ context.Context, id string) (int, error) {
	return f.s.usage[id], nil
}

type fakeCategories struct{ s *store }

func (f *fakeCategories) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	f.s.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	if c, ok := f.s.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCategories) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(f.s.categories))
	for _, c := range f.s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategories) Update(_ context.Context, c *entity.Category) error {
	if _, ok := f.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	f.s.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, id string) error {
	delete(f.s.categories, id)
	return nil
}

func (f *fakeCategories) Lock(_ context.Context, id string) (bool, error) {
	_, ok := f.s.categories[id]
	return ok, nil
}

func (f *fakeCategories) CountUsage(ctx context.Context, id string) (int, error) {
	list, _ := (&fakeProducts{f.s}).ListByCategory(ctx, id)
	return len(list), nil
}

type fakeSuppliers struct{ s *store }

func (f *fakeSuppliers) Create(_ context.Context, sp *entity.Supplier) error {
	cp := *sp
	f.s.suppliers[sp.ID] = &cp
	return nil
}

func (f *fakeSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	if sp, ok := f.s.suppliers[id]; ok {
		cp := *sp
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSuppliers) List(_ context.Context) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(f.s.suppliers))
	for _, sp := range f.s.suppliers {
		out = append(out, sp)
	}
	return out, nil
}

func (f *fakeSuppliers) Update(_ context.Context, sp *entity.Supplier) error {
	cp := *sp
	f.s.suppliers[sp.ID] = &cp
	return nil
}

func (f *fakeSuppliers) Delete(_ context.Context, id string) error {
	delete(f.s.suppliers, id)
	return nil
}

func (f *fakeSuppliers) Lock(_ context.Context, id string) (bool, error) {
	_, ok := f.s.suppliers[id]
	return ok, nil
}

func (f *fakeSuppliers) CountUsage(ctx context.Context, id string) (int, error) {
	list, _ := (&fakeProducts{f.s}).ListBySupplier(ctx, id)
	return len(list) + f.s.usage[id], nil
}

type fakeCustomers struct{ s *store }

func (f *fakeCustomers) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	f.s.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if c, ok := f.s.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCustomers) List(_ context.Context) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(f.s.customers))
	for _, c := range f.s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomers) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	f.s.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomers) Delete(_ context.Context, id string) error {
	delete(f.s.customers, id)
	return nil
}

func (f *fakeCustomers) Lock(_ context.Context, id string) (bool, error) {
	_, ok := f.s.customers[id]
	return ok, nil
}

func (f *fakeCustomers) CountUsage(_ context.Context, id string) (int, error) {
	return len(f.s.sales[id]), nil
}

// fakeSales solo implementa la lectura por cliente; el resto no se usa en catálogo.
type fakeSales struct {
	repository.SaleRepository
	s *store
}

func (f *fakeSales) ListByCustomer(_ context.Context, customerID string) ([]*entity.TransactionSummary, error) {
	return f.s.sales[customerID], nil
}
