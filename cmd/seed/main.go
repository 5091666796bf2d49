package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/internal/service"
	"go-order-desk/pkg/config"
	"go-order-desk/pkg/database"
	"go-order-desk/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const seedActor = "seed"

var demoCustomers = []service.CustomerRequest{
	{FirstName: "Ivan", LastName: "Petrov", Email: "ivan.petrov@example.com", Phone: "+7-900-000-0001", Address: "Moscow, Tverskaya 1"},
	{FirstName: "Anna", LastName: "Smirnova", Email: "anna.smirnova@example.com", Phone: "+7-900-000-0002", Address: "Kazan, Baumana 12"},
	{FirstName: "John", LastName: "Carter", Email: "john.carter@example.com", Phone: "+1-555-0100"},
}

var demoProducts = []service.ProductRequest{
	{Name: "Laptop 14\"", Category: model.CategoryElectronics, Price: decimal.RequireFromString("899.00"), Quantity: 12, SKU: "EL-LAP-14"},
	{Name: "USB-C Cable", Category: model.CategoryElectronics, Price: decimal.RequireFromString("9.99"), Quantity: 150, SKU: "EL-CBL-USBC"},
	{Name: "Winter Jacket", Category: model.CategoryClothing, Price: decimal.RequireFromString("120.00"), Quantity: 8, SKU: "CL-JKT-W"},
	{Name: "Go in Practice", Category: model.CategoryBooks, Price: decimal.RequireFromString("39.50"), Quantity: 25, SKU: "BK-GO-PR"},
	{Name: "Green Tea 100g", Category: model.CategoryFood, Price: decimal.RequireFromString("4.20"), Quantity: 3, SKU: "FD-TEA-GR"},
}

func main() {
	skipData := flag.Bool("migrate-only", false, "create tables without demo data")
	flag.Parse()

	cfg := config.Load("order-desk-seed")
	zlog, err := logger.InitLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}
	zlog.Info("✅ tables ready")
	if *skipData {
		return
	}

	ctx := logger.WithContext(context.Background(), zlog)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)

	customers := service.NewCustomerService(customerRepo)
	products := service.NewProductService(productRepo, nil)
	orders := service.NewOrderService(db, repository.NewOrderRepo(db), customerRepo, productRepo, service.PolicyPermissive, nil)

	var firstCustomer *model.Customer
	for i := range demoCustomers {
		c, err := customers.CreateCustomer(ctx, &demoCustomers[i], seedActor)
		if errors.Is(err, service.ErrEmailExists) {
			zlog.Info("customer exists, skipped", zap.String("email", demoCustomers[i].Email))
			continue
		}
		if err != nil {
			zlog.Fatal("failed to seed customer", zap.Error(err))
		}
		if firstCustomer == nil {
			firstCustomer = c
		}
	}

	var seeded []*model.Product
	for i := range demoProducts {
		p, err := products.CreateProduct(ctx, &demoProducts[i], seedActor)
		if errors.Is(err, service.ErrSKUExists) {
			zlog.Info("product exists, skipped", zap.String("sku", demoProducts[i].SKU))
			continue
		}
		if err != nil {
			zlog.Fatal("failed to seed product", zap.Error(err))
		}
		seeded = append(seeded, p)
	}

	// one sample order on a fresh database
	if firstCustomer != nil && len(seeded) >= 2 {
		order, err := orders.CreateOrder(ctx, &service.CreateOrderRequest{
			CustomerID: firstCustomer.ID,
			Items: []service.OrderLine{
				{ProductID: seeded[0].ID, Quantity: 1},
				{ProductID: seeded[1].ID, Quantity: 2},
			},
			Notes: "demo order",
		}, seedActor)
		if err != nil {
			zlog.Fatal("failed to seed order", zap.Error(err))
		}
		zlog.Info("demo order created", zap.String("order_id", order.ID.String()), zap.String("total", order.TotalAmount.StringFixed(2)))
	}

	zlog.Info("✅ demo data ready")
}
