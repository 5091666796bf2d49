package service

import (
	"context"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/pkg/apperr"

	"github.com/google/uuid"
)

const (
	defaultTopProducts = 5
	maxTopProducts     = 100
)

type ReportService interface {
	GetStats(ctx context.Context) (*repository.Stats, error)
	LowStock(ctx context.Context, threshold int) ([]model.Product, error)
	TopProducts(ctx context.Context, limit int) ([]repository.ProductSales, error)
	CustomerSummary(ctx context.Context, customerID uuid.UUID) (*repository.CustomerSummary, error)
	OrdersByStatus(ctx context.Context) ([]repository.StatusCount, error)
}

type reportService struct {
	reportRepo        repository.ReportRepository
	customerRepo      repository.CustomerRepository
	lowStockThreshold int
}

func NewReportService(reportRepo repository.ReportRepository, customerRepo repository.CustomerRepository, lowStockThreshold int) ReportService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &reportService{
		reportRepo:        reportRepo,
		customerRepo:      customerRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *reportService) GetStats(ctx context.Context) (*repository.Stats, error) {
	stats, err := s.reportRepo.GetStats(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return stats, nil
}

// LowStock lists active products below threshold; <= 0 uses the configured default
func (s *reportService) LowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	if threshold <= 0 {
		threshold = s.lowStockThreshold
	}
	products, err := s.reportRepo.LowStock(ctx, threshold)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return products, nil
}

func (s *reportService) TopProducts(ctx context.Context, limit int) ([]repository.ProductSales, error) {
	switch {
	case limit <= 0:
		limit = defaultTopProducts
	case limit > maxTopProducts:
		limit = maxTopProducts
	}
	sales, err := s.reportRepo.TopProducts(ctx, limit)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return sales, nil
}

func (s *reportService) CustomerSummary(ctx context.Context, customerID uuid.UUID) (*repository.CustomerSummary, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, apperr.FromStorage(err, ErrCustomerNotFound)
	}
	summary, err := s.reportRepo.CustomerSummary(ctx, customerID)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return summary, nil
}

func (s *reportService) OrdersByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	counts, err := s.reportRepo.OrdersByStatus(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, nil)
	}
	return counts, nil
}
