package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/internal/ws"
	"go-order-desk/pkg/apperr"
	"go-order-desk/pkg/logger"
	"go-order-desk/pkg/metrics"
	"go-order-desk/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *ProductRequest, by string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest, by string) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListAvailableProducts(ctx context.Context) ([]model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Category    model.Category  `json:"category" validate:"omitempty,oneof=electronics clothing books food other"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	SKU         string          `json:"sku" validate:"required,max=50"`
	IsActive    *bool           `json:"is_active"` // nil means active
}

func (r *ProductRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.TrimSpace(r.SKU)
	r.Category = model.Category(strings.ToLower(strings.TrimSpace(string(r.Category))))
	if r.Category == "" {
		r.Category = model.CategoryOther
	}
	// the column keeps two places; round here so callers see what is stored
	r.Price = r.Price.Round(model.MoneyScale)
}

func (r *ProductRequest) validate() error {
	if err := validator.Check(r); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	if r.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

func (r *ProductRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}

type productService struct {
	productRepo repository.ProductRepository
	events      EventPublisher
}

func NewProductService(productRepo repository.ProductRepository, events EventPublisher) ProductService {
	return &productService{
		productRepo: productRepo,
		events:      publisherOrNoop(events),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *ProductRequest, by string) (*model.Product, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureSKUFree(ctx, req.SKU, uuid.Nil); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		SKU:         req.SKU,
		IsActive:    req.active(),
	}
	product.CreatedBy = by
	product.UpdatedBy = by

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(apperr.Translate(err), gorm.ErrDuplicatedKey) {
			return nil, ErrSKUExists
		}
		return nil, apperr.FromStorage(err, nil)
	}

	metrics.EntityWrites.WithLabelValues("product", "create").Inc()
	logger.FromContext(ctx).Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("actor", by),
	)
	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "product_created",
		Data:    stockPayload(product),
		Actor:   by,
		Message: fmt.Sprintf("product '%s' created with %d units", product.Name, product.Quantity),
	})
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest, by string) (*model.Product, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(err, ErrProductNotFound)
	}
	if req.SKU != product.SKU {
		if err := s.ensureSKUFree(ctx, req.SKU, id); err != nil {
			return nil, err
		}
	}

	oldQuantity := product.Quantity
	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.Quantity = req.Quantity
	product.SKU = req.SKU
	product.IsActive = req.active()
	product.UpdatedBy = by

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(apperr.Translate(err), gorm.ErrDuplicatedKey) {
			return nil, ErrSKUExists
		}
		return nil, apperr.FromStorage(err, ErrProductNotFound)
	}

	metrics.EntityWrites.WithLabelValues("product", "update").Inc()
	logger.FromContext(ctx).Info("product updated",
		zap.String("product_id", id.String()),
		zap.Int("old_quantity", oldQuantity),
		zap.Int("new_quantity", product.Quantity),
		zap.String("actor", by),
	)
	payload := stockPayload(product)
	payload["old_quantity"] = oldQuantity
	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "product_updated",
		Data:    payload,
		Actor:   by,
		Message: fmt.Sprintf("product '%s' updated", product.Name),
	})
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(err, ErrProductNotFound)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return products, nil
}

// ListAvailableProducts returns active products with stock, the set an order may use
func (s *productService) ListAvailableProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAvailable(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return products, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return apperr.FromStorage(err, ErrProductNotFound)
	}

	count, err := s.productRepo.CountOrderItems(ctx, id)
	if err != nil {
		return apperr.FromStorage(err, nil)
	}
	if count > 0 {
		return ErrProductInUse
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(apperr.Translate(err), gorm.ErrForeignKeyViolated) {
			return ErrProductInUse
		}
		return apperr.FromStorage(err, ErrProductNotFound)
	}

	metrics.EntityWrites.WithLabelValues("product", "delete").Inc()
	logger.FromContext(ctx).Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *productService) ensureSKUFree(ctx context.Context, sku string, self uuid.UUID) error {
	existing, err := s.productRepo.FindBySKU(ctx, sku)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return apperr.FromStorage(err, nil)
	case existing.ID != self:
		return ErrSKUExists
	}
	return nil
}

func stockPayload(p *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID,
		"sku":       p.SKU,
		"name":      p.Name,
		"quantity":  p.Quantity,
		"price":     p.Price,
		"is_active": p.IsActive,
	}
}
