package repository

import (
	"context"

	"go-order-desk/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository holds the fixed, parameterized read-only reports
type ReportRepository interface {
	GetStats(ctx context.Context) (*Stats, error)
	LowStock(ctx context.Context, threshold int) ([]model.Product, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
	CustomerSummary(ctx context.Context, customerID uuid.UUID) (*CustomerSummary, error)
	OrdersByStatus(ctx context.Context) ([]StatusCount, error)
}

// Stats untuk overview counters
type Stats struct {
	Customers      int64 `json:"customers"`
	Products       int64 `json:"products"`
	ActiveProducts int64 `json:"active_products"`
	Orders         int64 `json:"orders"`
	PendingOrders  int64 `json:"pending_orders"`
}

type ProductSales struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CustomerSummary struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := r.db.WithContext(ctx)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&model.Customer{}), &stats.Customers},
		{db.Model(&model.Product{}), &stats.Products},
		{db.Model(&model.Product{}).Where("is_active = ?", true), &stats.ActiveProducts},
		{db.Model(&model.Order{}), &stats.Orders},
		{db.Model(&model.Order{}).Where("status = ?", model.StatusPending), &stats.PendingOrders},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

func (r *reportRepo) LowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND quantity < ?", true, threshold).
		Order("quantity ASC, name ASC").
		Find(&products).Error
	return products, err
}

func (r *reportRepo) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	var results []ProductSales

	rows, err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`p.id, p.name, p.sku,
			COALESCE(SUM(oi.quantity), 0) AS units_sold,
			COALESCE(SUM(oi.total_price), 0) AS revenue`).
		Joins("JOIN products p ON p.id = oi.product_id").
		Group("p.id, p.name, p.sku").
		Order("units_sold DESC, p.name ASC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row ProductSales
		if err := rows.Scan(&row.ProductID, &row.Name, &row.SKU, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *reportRepo) CustomerSummary(ctx context.Context, customerID uuid.UUID) (*CustomerSummary, error) {
	summary := CustomerSummary{CustomerID: customerID}
	row := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COUNT(*), COALESCE(SUM(total_amount), 0)").
		Where("customer_id = ?", customerID).
		Row()
	if err := row.Scan(&summary.OrderCount, &summary.TotalSpent); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepo) OrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	var results []StatusCount
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&results).Error
	return results, err
}
