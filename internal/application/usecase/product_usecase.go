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

// ProductUseCase casos de uso CRUD para productos.
// Quantity se fija al crear o editar; ventas y compras la mueven vía el motor de posteo.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	txRunner     CatalogTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	txRunner CatalogTxRunner,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo, txRunner: txRunner}
}

// Create crea un producto. Name, Quantity (>= 0) y Price (>= 0) son obligatorios.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	catID, supID, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    *in.Quantity,
		Price:       *in.Price,
		CategoryID:  catID,
		SupplierID:  supID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto con nombres de categoría y proveedor. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	view, err := uc.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(view), nil
}

// List lista todos los productos en orden de creación.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update reemplaza los campos editables de un producto (misma validación que Create).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	catID, supID, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Quantity = *in.Quantity
	product.Price = *in.Price
	product.CategoryID = catID
	product.SupplierID = supID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto si ninguna línea de venta o compra lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunCatalog(ctx, func(
		products repository.ProductRepository,
		_ repository.CategoryRepository,
		_ repository.SupplierRepository,
		_ repository.CustomerRepository,
	) error {
		return guardedDelete(ctx, id, products.Lock, products.CountUsage, products.Delete)
	})
}

func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest) (*string, *string, error) {
	if strings.TrimSpace(in.Name) == "" || in.Quantity == nil || in.Price == nil {
		return nil, nil, fmt.Errorf("%w: name, quantity y price son obligatorios", domain.ErrInvalidInput)
	}
	if *in.Quantity < 0 {
		return nil, nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	catID := optionalID(in.CategoryID)
	if catID != nil {
		c, err := uc.categoryRepo.GetByID(ctx, *catID)
		if err != nil {
			return nil, nil, err
		}
		if c == nil {
			return nil, nil, fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
	}
	supID := optionalID(in.SupplierID)
	if supID != nil {
		s, err := uc.supplierRepo.GetByID(ctx, *supID)
		if err != nil {
			return nil, nil, err
		}
		if s == nil {
			return nil, nil, fmt.Errorf("%w: el proveedor no existe", domain.ErrInvalidInput)
		}
	}
	return catID, supID, nil
}

// optionalID trata "" como referencia vacía.
func optionalID(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toProductResponse(p *entity.ProductView) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Quantity:     p.Quantity,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		CategoryName: p.CategoryName,
		SupplierName: p.SupplierName,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
