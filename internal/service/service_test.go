package service

import (
	"context"
	"sync"
	"testing"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/internal/ws"
	"go-order-desk/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const actor = "test-operator"

type recorder struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recorder) Publish(e ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	events    *recorder
	customers CustomerService
	products  ProductService
	orders    OrderService
	reports   ReportService
}

func newFixture(t *testing.T, policy StatusPolicy) *fixture {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	events := &recorder{}

	return &fixture{
		db:        db,
		events:    events,
		customers: NewCustomerService(customerRepo),
		products:  NewProductService(productRepo, events),
		orders:    NewOrderService(db, orderRepo, customerRepo, productRepo, policy, events),
		reports:   NewReportService(repository.NewReportRepo(db), customerRepo, 10),
	}
}

func (f *fixture) customer(t *testing.T, email string) *model.Customer {
	t.Helper()
	c, err := f.customers.CreateCustomer(context.Background(), &CustomerRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     email,
	}, actor)
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, sku string, price int64, qty int) *model.Product {
	t.Helper()
	p, err := f.products.CreateProduct(context.Background(), &ProductRequest{
		Name:     "Product " + sku,
		Category: model.CategoryElectronics,
		Price:    decimal.NewFromInt(price),
		Quantity: qty,
		SKU:      sku,
	}, actor)
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id interface{}) int {
	t.Helper()
	var p model.Product
	require.NoError(t, f.db.First(&p, "id = ?", id).Error)
	return p.Quantity
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}
