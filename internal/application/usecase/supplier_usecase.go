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

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
	txRunner    CatalogTxRunner
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, productRepo repository.ProductRepository, txRunner CatalogTxRunner) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, productRepo: productRepo, txRunner: txRunner}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.ContactRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	s := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        name,
		ContactInfo: in.ContactInfo,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID devuelve el proveedor con los productos que suministra.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierDetailResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.productRepo.ListBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.SupplierDetailResponse{SupplierResponse: *toSupplierResponse(s), Products: make([]dto.ProductBrief, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, dto.NewProductBrief(p))
	}
	return out, nil
}

func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.ContactRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = name
	s.ContactInfo = in.ContactInfo
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Delete falla con ErrInUse si un producto o una compra referencian al proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunCatalog(ctx, func(
		_ repository.ProductRepository,
		_ repository.CategoryRepository,
		suppliers repository.SupplierRepository,
		_ repository.CustomerRepository,
	) error {
		return guardedDelete(ctx, id, suppliers.Lock, suppliers.CountUsage, suppliers.Delete)
	})
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, ContactInfo: s.ContactInfo, CreatedAt: s.CreatedAt}
}
