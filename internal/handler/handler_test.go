package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-order-desk/internal/handler"
	"go-order-desk/internal/loader"
	"go-order-desk/internal/middleware"
	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/internal/service"
	"go-order-desk/pkg/database"
	"go-order-desk/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	app   *fiber.App
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	tokens := jwt.NewManager("handler-secret", 1)
	operatorRepo := repository.NewOperatorRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	authService := service.NewAuthService(operatorRepo, tokens)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo, nil)
	orderService := service.NewOrderService(db, orderRepo, customerRepo, productRepo, service.PolicyPermissive, nil)
	reportService := service.NewReportService(repository.NewReportRepo(db), customerRepo, 10)

	_, err = authService.EnsureAdmin("admin@example.com", "admin123", "Administrator")
	require.NoError(t, err)

	snapshots := loader.New(loader.Sources{
		Customers: customerService.ListCustomers,
		Products:  productService.ListProducts,
		Orders:    orderService.ListOrders,
		Stats:     reportService.GetStats,
	})

	app := fiber.New()
	app.Use(middleware.RequestLogger(zap.NewNop()))
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customers: handler.NewCustomerHandler(customerService, orderService),
		Products:  handler.NewProductHandler(productService),
		Orders:    handler.NewOrderHandler(orderService),
		Reports:   handler.NewReportHandler(reportService),
		System:    handler.NewSystemHandler(snapshots, func(ctx context.Context) error { return database.Ping(ctx, db) }),
	}, middleware.RequireAuth(tokens, operatorRepo))

	api := &testAPI{app: app}
	var login struct {
		Token string `json:"token"`
	}
	status := api.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "admin@example.com", "password": "admin123"}, &login)
	require.Equal(t, http.StatusOK, status)
	api.token = login.Token
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type created[T any] struct {
	Data T `json:"data"`
}

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func TestOrderFlowOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	var customer created[model.Customer]
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/v1/customers",
		map[string]string{"first_name": "Ivan", "last_name": "Petrov", "email": "c1@example.com"}, &customer))

	var p1, p2 created[model.Product]
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/v1/products",
		map[string]interface{}{"name": "P1", "sku": "P1", "price": "10", "quantity": 5}, &p1))
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/v1/products",
		map[string]interface{}{"name": "P2", "sku": "P2", "price": 20, "quantity": 2, "category": "books"}, &p2))

	var order created[model.Order]
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_id": customer.Data.ID,
		"items": []map[string]interface{}{
			{"product_id": p1.Data.ID, "quantity": 2},
			{"product_id": p2.Data.ID, "quantity": 1},
		},
	}, &order))
	assert.True(t, decimal.NewFromInt(40).Equal(order.Data.TotalAmount))

	var dup apiError
	assert.Equal(t, http.StatusUnprocessableEntity, api.do(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customer_id": customer.Data.ID,
		"items": []map[string]interface{}{
			{"product_id": p1.Data.ID, "quantity": 2},
			{"product_id": p1.Data.ID, "quantity": 3},
		},
	}, &dup))
	assert.Equal(t, "validation", dup.Kind)

	var stock model.Product
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/products/"+p1.Data.ID.String(), nil, &stock))
	assert.Equal(t, 3, stock.Quantity)

	var updated created[model.Order]
	require.Equal(t, http.StatusOK, api.do(t, http.MethodPut, "/api/v1/orders/"+order.Data.ID.String()+"/status",
		map[string]string{"status": "shipped"}, &updated))
	assert.Equal(t, model.StatusShipped, updated.Data.Status)

	var badStatus apiError
	assert.Equal(t, http.StatusUnprocessableEntity, api.do(t, http.MethodPut, "/api/v1/orders/"+order.Data.ID.String()+"/status",
		map[string]string{"status": "lost"}, &badStatus))

	var conflict apiError
	assert.Equal(t, http.StatusConflict, api.do(t, http.MethodDelete, "/api/v1/customers/"+customer.Data.ID.String(), nil, &conflict))
	assert.Equal(t, "conflict", conflict.Kind)
	assert.Equal(t, http.StatusConflict, api.do(t, http.MethodDelete, "/api/v1/products/"+p2.Data.ID.String(), nil, nil))

	var stats repository.Stats
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/reports/stats", nil, &stats))
	assert.EqualValues(t, 1, stats.Orders)
	assert.EqualValues(t, 0, stats.PendingOrders)

	var snap loader.Snapshot
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/snapshot", nil, &snap))
	assert.Len(t, snap.Products, 2)
	assert.Len(t, snap.Orders, 1)
}

func TestErrorStatuses(t *testing.T) {
	api := newTestAPI(t)

	var notFound apiError
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil, &notFound))
	assert.Equal(t, "not_found", notFound.Kind)

	assert.Equal(t, http.StatusUnprocessableEntity, api.do(t, http.MethodGet, "/api/v1/customers/not-a-uuid", nil, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, api.do(t, http.MethodPost, "/api/v1/customers",
		map[string]string{"first_name": "No", "email": "bad"}, nil))

	api.do(t, http.MethodPost, "/api/v1/customers", map[string]string{"first_name": "A", "last_name": "B", "email": "same@example.com"}, nil)
	assert.Equal(t, http.StatusConflict, api.do(t, http.MethodPost, "/api/v1/customers",
		map[string]string{"first_name": "C", "last_name": "D", "email": "same@example.com"}, nil))

	var health map[string]interface{}
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/health", nil, &health))
	assert.Equal(t, "ok", health["status"])
}

func TestAuthRequired(t *testing.T) {
	api := newTestAPI(t)
	token := api.token

	api.token = ""
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/v1/customers", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "admin@example.com", "password": "nope"}, nil))

	api.token = "not.a.jwt"
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/v1/orders", nil, nil))

	api.token = token
	var me model.OperatorResponse
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/auth/me", nil, &me))
	assert.Equal(t, "admin@example.com", me.Email)
}
