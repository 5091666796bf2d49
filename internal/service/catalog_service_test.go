package service

import (
	"context"
	"testing"

	"go-order-desk/internal/model"
	"go-order-desk/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerValidation(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	ctx := context.Background()

	_, err := f.customers.CreateCustomer(ctx, &CustomerRequest{LastName: "Petrov", Email: "a@example.com"}, actor)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = f.customers.CreateCustomer(ctx, &CustomerRequest{FirstName: "Ivan", LastName: "Petrov", Email: "not-an-email"}, actor)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	c, err := f.customers.CreateCustomer(ctx, &CustomerRequest{FirstName: " Ivan ", LastName: "Petrov", Email: " Ivan@Example.COM "}, actor)
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", c.Email)
	assert.Equal(t, "Ivan", c.FirstName)
	assert.Equal(t, actor, c.CreatedBy)

	_, err = f.customers.CreateCustomer(ctx, &CustomerRequest{FirstName: "Other", LastName: "Person", Email: "ivan@example.com"}, actor)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateCustomer(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	ctx := context.Background()
	a := f.customer(t, "a@example.com")
	f.customer(t, "b@example.com")

	updated, err := f.customers.UpdateCustomer(ctx, a.ID, &CustomerRequest{FirstName: "Anna", LastName: "Ivanova", Email: "a@example.com", Phone: "555"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Ivanova Anna", updated.FullName())

	_, err = f.customers.UpdateCustomer(ctx, a.ID, &CustomerRequest{FirstName: "Anna", LastName: "Ivanova", Email: "b@example.com"}, actor)
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = f.customers.UpdateCustomer(ctx, uuid.New(), &CustomerRequest{FirstName: "X", LastName: "Y", Email: "x@example.com"}, actor)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	got, err := f.customers.GetCustomer(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "555", got.Phone)

	list, err := f.customers.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteCustomerWithOrdersFails(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	ctx := context.Background()
	order := placeOrder(t, f)
	idle := f.customer(t, "idle@example.com")

	err := f.customers.DeleteCustomer(ctx, order.CustomerID)
	assert.ErrorIs(t, err, ErrCustomerHasOrders)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	_, err = f.customers.GetCustomer(ctx, order.CustomerID)
	assert.NoError(t, err)

	require.NoError(t, f.customers.DeleteCustomer(ctx, idle.ID))
	assert.ErrorIs(t, f.customers.DeleteCustomer(ctx, idle.ID), ErrCustomerNotFound)
}

func TestCreateProductRules(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	ctx := context.Background()

	p, err := f.products.CreateProduct(ctx, &ProductRequest{Name: "Lamp", Price: decimal.RequireFromString("12.50"), Quantity: 3, SKU: "LAMP-1"}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryOther, p.Category)
	assert.True(t, p.IsActive)

	tests := []struct {
		name string
		req  *ProductRequest
		want apperr.Kind
	}{
		{"missing name", &ProductRequest{Price: decimal.NewFromInt(1), SKU: "X1"}, apperr.KindValidation},
		{"missing sku", &ProductRequest{Name: "X", Price: decimal.NewFromInt(1)}, apperr.KindValidation},
		{"negative price", &ProductRequest{Name: "X", Price: decimal.NewFromInt(-1), SKU: "X2"}, apperr.KindValidation},
		{"negative stock", &ProductRequest{Name: "X", Price: decimal.NewFromInt(1), Quantity: -4, SKU: "X3"}, apperr.KindValidation},
		{"bad category", &ProductRequest{Name: "X", Category: "toys", Price: decimal.NewFromInt(1), SKU: "X4"}, apperr.KindValidation},
		{"duplicate sku", &ProductRequest{Name: "X", Price: decimal.NewFromInt(1), SKU: "LAMP-1"}, apperr.KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.products.CreateProduct(ctx, tt.req, actor)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err))
		})
	}

	assert.EqualValues(t, 1, f.count(t, &model.Product{}))
	assert.Contains(t, f.events.actions(), "product_created")
}

func TestUpdateProductAndAvailability(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	ctx := context.Background()
	p := f.product(t, "P1", 10, 5)
	f.product(t, "P2", 10, 0)
	other := f.product(t, "P3", 10, 1)

	inactive := false
	updated, err := f.products.UpdateProduct(ctx, p.ID, &ProductRequest{
		Name: "Renamed", Category: model.CategoryBooks, Price: decimal.NewFromInt(15), Quantity: 8, SKU: "P1", IsActive: &inactive,
	}, actor)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	stored, err := f.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 8, stored.Quantity)
	assert.Equal(t, model.CategoryBooks, stored.Category)

	available, err := f.products.ListAvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, other.ID, available[0].ID)

	_, err = f.products.UpdateProduct(ctx, p.ID, &ProductRequest{Name: "Renamed", Price: decimal.NewFromInt(15), SKU: "P3"}, actor)
	assert.ErrorIs(t, err, ErrSKUExists)

	all, err := f.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteProductInUseFails(t *testing.T) {
	f := newFixture(t, PolicyPermissive)
	ctx := context.Background()
	order := placeOrder(t, f)
	used := order.Items[0].ProductID
	spare := f.product(t, "SPARE", 1, 1)

	err := f.products.DeleteProduct(ctx, used)
	assert.ErrorIs(t, err, ErrProductInUse)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, f.products.DeleteProduct(ctx, spare.ID))
	_, err = f.products.GetProduct(ctx, spare.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
