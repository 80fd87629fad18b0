package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
	"github.com/jhoicas/inventory-manager/pkg/logger"
)

// PostingUseCase registra ventas y compras de forma transaccional: cabecera, líneas y
// movimiento de stock en una sola tx, con bloqueo de fila (SELECT FOR UPDATE) por producto.
type PostingUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	publisher    EventPublisher
	log          *logger.Logger
}

// NewPostingUseCase construye el caso de uso. publisher y log pueden ser nil.
func NewPostingUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *PostingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PostingUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		publisher:    publisher,
		log:          log.With("posting"),
	}
}

// PostSale registra una venta. Por cada línea, en orden: bloquea el producto, verifica
// existencia y stock, inserta la línea y descuenta. Cualquier error revierte toda la venta.
func (uc *PostingUseCase) PostSale(ctx context.Context, userID string, in dto.PostSaleRequest) (*dto.PostSaleResponse, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer_id es obligatorio", domain.ErrInvalidInput)
	}
	date, err := parseDate(in.SaleDate, "sale_date")
	if err != nil {
		return nil, err
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customerID)
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		SaleDate:   date,
		CreatedBy:  userID,
		CreatedAt:  now,
	}
	items := buildItems(sale.ID, in.Items)

	err = uc.txRunner.RunPosting(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			available, found, err := stockRepo.QuantityForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !found {
				return &domain.StockError{Err: domain.ErrNotFound, ProductID: item.ProductID}
			}
			if item.Quantity > available {
				return &domain.StockError{Err: domain.ErrInsufficientStock, ProductID: item.ProductID, Available: available, Requested: item.Quantity}
			}
			if err := saleRepo.AddItem(ctx, item); err != nil {
				return err
			}
			ok, err := stockRepo.Decrement(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.StockError{Err: domain.ErrInsufficientStock, ProductID: item.ProductID, Available: available, Requested: item.Quantity}
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("customer_id", customerID).Msg("venta revertida")
		return nil, err
	}

	total := sumTotal(items)
	uc.log.Info().Str("sale_id", sale.ID).Int("items", len(items)).Str("total", total.String()).Msg("venta registrada")
	uc.publish(ctx, EventSale, sale.ID, userID, items, -1, now)

	return &dto.PostSaleResponse{
		Success:     true,
		ID:          sale.ID,
		CustomerID:  customerID,
		SaleDate:    date.Format(dto.DateLayout),
		Items:       toLineItemResponses(items),
		TotalAmount: total,
	}, nil
}

// PostPurchase registra una compra e incrementa el stock de cada línea.
func (uc *PostingUseCase) PostPurchase(ctx context.Context, userID string, in dto.PostPurchaseRequest) (*dto.PostPurchaseResponse, error) {
	supplierID := strings.TrimSpace(in.SupplierID)
	if supplierID == "" {
		return nil, fmt.Errorf("%w: supplier_id es obligatorio", domain.ErrInvalidInput)
	}
	date, err := parseDate(in.PurchaseDate, "purchase_date")
	if err != nil {
		return nil, err
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, supplierID)
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:           uuid.New().String(),
		SupplierID:   supplierID,
		PurchaseDate: date,
		CreatedBy:    userID,
		CreatedAt:    now,
	}
	items := buildItems(purchase.ID, in.Items)

	err = uc.txRunner.RunPosting(ctx, func(
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		for _, item := range items {
			_, found, err := stockRepo.QuantityForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !found {
				return &domain.StockError{Err: domain.ErrNotFound, ProductID: item.ProductID}
			}
			if err := purchaseRepo.AddItem(ctx, item); err != nil {
				return err
			}
			ok, err := stockRepo.Increment(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.StockError{Err: domain.ErrNotFound, ProductID: item.ProductID}
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("compra revertida")
		return nil, err
	}

	total := sumTotal(items)
	uc.log.Info().Str("purchase_id", purchase.ID).Int("items", len(items)).Str("total", total.String()).Msg("compra registrada")
	uc.publish(ctx, EventPurchase, purchase.ID, userID, items, 1, now)

	return &dto.PostPurchaseResponse{
		Success:      true,
		ID:           purchase.ID,
		SupplierID:   supplierID,
		PurchaseDate: date.Format(dto.DateLayout),
		Items:        toLineItemResponses(items),
		TotalAmount:  total,
	}, nil
}

// ListSales ventas más recientes primero. limit <= 0 = todas.
func (uc *PostingUseCase) ListSales(ctx context.Context, limit int) ([]dto.SaleSummaryResponse, error) {
	list, err := uc.saleRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleSummary(s))
	}
	return out, nil
}

// GetSale cabecera de la venta con sus líneas.
func (uc *PostingUseCase) GetSale(ctx context.Context, id string) (*dto.SaleDetailResponse, error) {
	head, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SaleDetailResponse{SaleSummaryResponse: dto.NewSaleSummary(head), Items: toLineItemViews(items)}, nil
}

// ListPurchases compras más recientes primero. limit <= 0 = todas.
func (uc *PostingUseCase) ListPurchases(ctx context.Context, limit int) ([]dto.PurchaseSummaryResponse, error) {
	list, err := uc.purchaseRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseSummaryResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPurchaseSummary(p))
	}
	return out, nil
}

// GetPurchase cabecera de la compra con sus líneas.
func (uc *PostingUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseDetailResponse, error) {
	head, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseDetailResponse{PurchaseSummaryResponse: dto.NewPurchaseSummary(head), Items: toLineItemViews(items)}, nil
}

func (uc *PostingUseCase) publish(ctx context.Context, kind, txID, userID string, items []*entity.LineItem, sign int, at time.Time) {
	if uc.publisher == nil {
		return
	}
	events := make([]StockEvent, 0, len(items))
	for _, it := range items {
		events = append(events, StockEvent{
			Kind:          kind,
			TransactionID: txID,
			ProductID:     it.ProductID,
			Delta:         sign * it.Quantity,
			UserID:        userID,
			OccurredAt:    at,
		})
	}
	if err := uc.publisher.Publish(ctx, events); err != nil {
		uc.log.Error().Err(err).Str("transaction_id", txID).Msg("no se pudo publicar evento de stock")
	}
}

func parseDate(s, field string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, field)
	}
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return d, nil
}

func validateItems(items []dto.LineItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: se requiere al menos una línea", domain.ErrInvalidInput)
	}
	for i, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return fmt.Errorf("%w: línea %d sin product_id", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: línea %d con quantity <= 0", domain.ErrInvalidInput, i+1)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: línea %d con price negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

func buildItems(parentID string, in []dto.LineItemRequest) []*entity.LineItem {
	items := make([]*entity.LineItem, 0, len(in))
	for _, it := range in {
		items = append(items, &entity.LineItem{
			ID:        uuid.New().String(),
			ParentID:  parentID,
			ProductID: strings.TrimSpace(it.ProductID),
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return items
}

func sumTotal(items []*entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}
	return total
}

func toLineItemResponses(items []*entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewLineItem(&entity.LineItemView{LineItem: *it}))
	}
	return out
}

func toLineItemViews(items []*entity.LineItemView) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewLineItem(it))
	}
	return out
}
