package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	saleRepo repository.SaleRepository
	txRunner CatalogTxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, saleRepo repository.SaleRepository, txRunner CatalogTxRunner) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, saleRepo: saleRepo, txRunner: txRunner}
}

func (uc *CustomerUseCase) Create(ctx context.Context, in dto.ContactRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	c := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        name,
		ContactInfo: in.ContactInfo,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID devuelve el cliente con su historial de ventas (más recientes primero).
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerDetailResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	sales, err := uc.saleRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerDetailResponse{CustomerResponse: *toCustomerResponse(c), Sales: make([]dto.SaleSummaryResponse, 0, len(sales))}
	for _, s := range sales {
		out.Sales = append(out.Sales, dto.NewSaleSummary(s))
	}
	return out, nil
}

func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.ContactRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = name
	c.ContactInfo = in.ContactInfo
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete falla con ErrInUse si el cliente tiene ventas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunCatalog(ctx, func(
		_ repository.ProductRepository,
		_ repository.CategoryRepository,
		_ repository.SupplierRepository,
		customers repository.CustomerRepository,
	) error {
		return guardedDelete(ctx, id, customers.Lock, customers.CountUsage, customers.Delete)
	})
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{ID: c.ID, Name: c.Name, ContactInfo: c.ContactInfo, CreatedAt: c.CreatedAt}
}
