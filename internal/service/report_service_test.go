package service

import (
	"context"
	"testing"

	"go-order-desk/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReports(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	ctx := context.Background()
	c := f.customer(t, "r@example.com")
	f.customer(t, "idle@example.com")
	p1 := f.product(t, "P1", 10, 20)
	p2 := f.product(t, "P2", 20, 4)

	first, err := f.orders.CreateOrder(ctx, &CreateOrderRequest{
		CustomerID: c.ID,
		Items:      []OrderLine{{ProductID: p1.ID, Quantity: 5}, {ProductID: p2.ID, Quantity: 1}},
	}, actor)
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(ctx, &CreateOrderRequest{
		CustomerID: c.ID,
		Items:      []OrderLine{{ProductID: p2.ID, Quantity: 2}},
	}, actor)
	require.NoError(t, err)
	_, err = f.orders.UpdateOrderStatus(ctx, first.ID, model.StatusShipped, actor)
	require.NoError(t, err)

	stats, err := f.reports.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Customers)
	assert.EqualValues(t, 2, stats.Products)
	assert.EqualValues(t, 2, stats.ActiveProducts)
	assert.EqualValues(t, 2, stats.Orders)
	assert.EqualValues(t, 1, stats.PendingOrders)

	low, err := f.reports.LowStock(ctx, 0)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, p2.ID, low[0].ID)
	assert.Equal(t, 1, low[0].Quantity)

	top, err := f.reports.TopProducts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, p1.ID, top[0].ProductID)
	assert.EqualValues(t, 5, top[0].UnitsSold)
	assert.True(t, decimal.NewFromInt(50).Equal(top[0].Revenue))
	assert.EqualValues(t, 3, top[1].UnitsSold)

	summary, err := f.reports.CustomerSummary(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.OrderCount)
	assert.True(t, decimal.NewFromInt(110).Equal(summary.TotalSpent), summary.TotalSpent.String())

	_, err = f.reports.CustomerSummary(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	byStatus, err := f.reports.OrdersByStatus(ctx)
	require.NoError(t, err)
	counts := map[model.OrderStatus]int64{}
	for _, sc := range byStatus {
		counts[sc.Status] = sc.Count
	}
	assert.Equal(t, map[model.OrderStatus]int64{model.StatusPending: 1, model.StatusShipped: 1}, counts)
}
