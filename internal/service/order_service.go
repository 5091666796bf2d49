package service

import (
	"context"
	"fmt"
	"time"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/internal/ws"
	"go-order-desk/pkg/apperr"
	"go-order-desk/pkg/logger"
	"go-order-desk/pkg/metrics"
	"go-order-desk/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest, by string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, by string) (*model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID, by string) error
}

type CreateOrderRequest struct {
	CustomerID uuid.UUID   `json:"customer_id" validate:"uuid_required"`
	Items      []OrderLine `json:"items" validate:"required,min=1,dive"`
	Notes      string      `json:"notes"`
}

type OrderLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

type UpdateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// validate checks the request shape without touching storage
func (r *CreateOrderRequest) validate() error {
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	seen := make(map[uuid.UUID]bool, len(r.Items))
	for _, line := range r.Items {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: product %s", ErrInvalidQuantity, line.ProductID)
		}
		if seen[line.ProductID] {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, line.ProductID)
		}
		seen[line.ProductID] = true
	}
	return validator.Check(r)
}

func (r *CreateOrderRequest) productIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Items))
	for _, line := range r.Items {
		ids = append(ids, line.ProductID)
	}
	return ids
}

type orderService struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	policy       StatusPolicy
	events       EventPublisher
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	policy StatusPolicy,
	events EventPublisher,
) OrderService {
	if policy == "" {
		policy = PolicyPermissive
	}
	return &orderService{
		db:           db,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		policy:       policy,
		events:       publisherOrNoop(events),
	}
}

// CreateOrder validates the lines, decrements stock and inserts the order
// with its items in a single transaction. Nothing is written on any failure.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest, by string) (*model.Order, error) {
	log := logger.FromContext(ctx)

	order, err := s.createOrder(ctx, req, by)
	if err != nil {
		kind := apperr.KindOf(err)
		metrics.OrderFailures.WithLabelValues(kind.String()).Inc()
		if kind == apperr.KindTransient || kind == apperr.KindInternal {
			log.Error("order creation failed", zap.Error(err))
		} else {
			log.Info("order rejected", zap.String("kind", kind.String()), zap.Error(err))
		}
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.Items)),
		zap.String("actor", by),
	)

	s.events.Publish(ws.Event{
		Type:   "order_update",
		Action: "order_created",
		Data: map[string]interface{}{
			"id":           order.ID,
			"customer_id":  order.CustomerID,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
			"items":        len(order.Items),
		},
		Actor:   by,
		Message: fmt.Sprintf("order %s created for %s", order.ID, order.Customer.FullName()),
	})
	for _, item := range order.Items {
		s.events.Publish(ws.Event{
			Type:   "stock_update",
			Action: "stock_decremented",
			Data: map[string]interface{}{
				"id":        item.ProductID,
				"sku":       item.Product.SKU,
				"name":      item.Product.Name,
				"quantity":  item.Product.Quantity,
				"sold":      item.Quantity,
				"order_id":  order.ID,
				"is_active": item.Product.IsActive,
			},
			Actor: by,
		})
	}
	return order, nil
}

func (s *orderService) createOrder(ctx context.Context, req *CreateOrderRequest, by string) (*model.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.customerRepo.FindByIDTx(tx, req.CustomerID)
		if err != nil {
			return apperr.FromStorage(err, ErrCustomerNotFound)
		}

		products, err := s.productRepo.FindByIDs(tx, req.productIDs())
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		// check every line before the first write
		for _, line := range req.Items {
			p, ok := byID[line.ProductID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			if !p.IsActive {
				return fmt.Errorf("%w: %s", ErrProductInactive, p.Name)
			}
			if !p.Available() || line.Quantity > p.Quantity {
				return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, p.Name, p.Quantity, line.Quantity)
			}
		}

		items := make([]model.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			p := byID[line.ProductID]
			changed, err := s.productRepo.DecrementStock(tx, p.ID, line.Quantity, by)
			if err != nil {
				return err
			}
			if !changed {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
			}
			p.Quantity -= line.Quantity

			item := model.OrderItem{
				ProductID: p.ID,
				Product:   &p,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
			}
			item.TotalPrice = item.LineTotal()
			items = append(items, item)
		}

		order = &model.Order{
			CustomerID: customer.ID,
			OrderDate:  time.Now(),
			Status:     model.StatusPending,
			Notes:      req.Notes,
			Items:      items,
		}
		order.TotalAmount = order.ItemsTotal()
		order.CreatedBy = by
		order.UpdatedBy = by
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		order.Customer = customer
		return nil
	})
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, by string) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var from model.OrderStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDTx(tx, id)
		if err != nil {
			return apperr.FromStorage(err, ErrOrderNotFound)
		}
		from = order.Status
		if err := s.policy.Check(from, status); err != nil {
			return err
		}
		return s.orderRepo.UpdateStatus(tx, id, status, by)
	})
	if err != nil {
		return nil, apperr.FromStorage(err, ErrOrderNotFound)
	}

	metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	logger.FromContext(ctx).Info("order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
		zap.String("actor", by),
	)
	s.events.Publish(ws.Event{
		Type:   "order_update",
		Action: "order_status_changed",
		Data: map[string]interface{}{
			"id":         id,
			"old_status": from,
			"new_status": status,
		},
		Actor:   by,
		Message: fmt.Sprintf("order %s moved from %s to %s", id, from, status),
	})

	return s.GetOrder(ctx, id)
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(err, ErrOrderNotFound)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return orders, nil
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, apperr.FromStorage(err, ErrCustomerNotFound)
	}
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return orders, nil
}

// DeleteOrder removes the order and its items. Stock is not given back.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID, by string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return apperr.FromStorage(err, ErrOrderNotFound)
	}

	metrics.EntityWrites.WithLabelValues("order", "delete").Inc()
	logger.FromContext(ctx).Info("order deleted",
		zap.String("order_id", id.String()),
		zap.String("actor", by),
	)
	s.events.Publish(ws.Event{
		Type:   "order_update",
		Action: "order_deleted",
		Data:   map[string]interface{}{"id": id},
		Actor:  by,
	})
	return nil
}
