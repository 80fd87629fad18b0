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

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	txRunner    CatalogTxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, productRepo repository.ProductRepository, txRunner CatalogTxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo, txRunner: txRunner}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID devuelve la categoría con sus productos.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryDetailResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.productRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryDetailResponse{CategoryResponse: *toCategoryResponse(c), Products: make([]dto.ProductBrief, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, dto.NewProductBrief(p))
	}
	return out, nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
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
	c.Description = in.Description
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete falla con ErrInUse si algún producto usa la categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunCatalog(ctx, func(
		_ repository.ProductRepository,
		categories repository.CategoryRepository,
		_ repository.SupplierRepository,
		_ repository.CustomerRepository,
	) error {
		return guardedDelete(ctx, id, categories.Lock, categories.CountUsage, categories.Delete)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}
