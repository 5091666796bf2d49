package service

import (
	"context"
	"errors"
	"strings"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/pkg/apperr"
	"go-order-desk/pkg/logger"
	"go-order-desk/pkg/metrics"
	"go-order-desk/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *CustomerRequest, by string) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req *CustomerRequest, by string) (*model.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type CustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"max=20"`
	Address   string `json:"address"`
}

func (r *CustomerRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *CustomerRequest, by string) (*model.Customer, error) {
	req.normalize()
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	customer.CreatedBy = by
	customer.UpdatedBy = by

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(apperr.Translate(err), gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, apperr.FromStorage(err, nil)
	}

	metrics.EntityWrites.WithLabelValues("customer", "create").Inc()
	logger.FromContext(ctx).Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("actor", by),
	)
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req *CustomerRequest, by string) (*model.Customer, error) {
	req.normalize()
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(err, ErrCustomerNotFound)
	}
	if req.Email != customer.Email {
		if err := s.ensureEmailFree(ctx, req.Email, id); err != nil {
			return nil, err
		}
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.UpdatedBy = by

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(apperr.Translate(err), gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, apperr.FromStorage(err, ErrCustomerNotFound)
	}

	metrics.EntityWrites.WithLabelValues("customer", "update").Inc()
	logger.FromContext(ctx).Info("customer updated",
		zap.String("customer_id", id.String()),
		zap.String("actor", by),
	)
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStorage(err, ErrCustomerNotFound)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return customers, nil
}

// DeleteCustomer refuses customers that still own orders
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return apperr.FromStorage(err, ErrCustomerNotFound)
	}

	count, err := s.customerRepo.CountOrders(ctx, id)
	if err != nil {
		return apperr.FromStorage(err, nil)
	}
	if count > 0 {
		return ErrCustomerHasOrders
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(apperr.Translate(err), gorm.ErrForeignKeyViolated) {
			return ErrCustomerHasOrders
		}
		return apperr.FromStorage(err, ErrCustomerNotFound)
	}

	metrics.EntityWrites.WithLabelValues("customer", "delete").Inc()
	logger.FromContext(ctx).Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func (s *customerService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.customerRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return apperr.FromStorage(err, nil)
	case existing.ID != self:
		return ErrEmailExists
	}
	return nil
}
