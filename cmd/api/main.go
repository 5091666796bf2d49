package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-order-desk/internal/handler"
	"go-order-desk/internal/loader"
	"go-order-desk/internal/middleware"
	"go-order-desk/internal/repository"
	"go-order-desk/internal/service"
	"go-order-desk/internal/ws"
	"go-order-desk/pkg/config"
	"go-order-desk/pkg/database"
	"go-order-desk/pkg/jwt"
	"go-order-desk/pkg/logger"
	"go-order-desk/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg := config.Load("order-desk-api")

	zlog, err := logger.InitLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	policy, err := service.ParseStatusPolicy(cfg.Order.StatusPolicy)
	if err != nil {
		zlog.Fatal("invalid ORDER_STATUS_POLICY", zap.Error(err))
	}

	// 2. Setup Database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	operatorRepo := repository.NewOperatorRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(operatorRepo, tokens)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo, wsHub)
	orderService := service.NewOrderService(db, orderRepo, customerRepo, productRepo, policy, wsHub)
	reportService := service.NewReportService(reportRepo, customerRepo, cfg.Order.LowStockThreshold)

	if _, err := authService.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		zlog.Warn("failed to seed admin operator", zap.Error(err))
	}

	snapshots := loader.New(loader.Sources{
		Customers: customerService.ListCustomers,
		Products:  productService.ListProducts,
		Orders:    orderService.ListOrders,
		Stats:     reportService.GetStats,
	})

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Order Desk v1.0",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(zlog))
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 6. Routes
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customers: handler.NewCustomerHandler(customerService, orderService),
		Products:  handler.NewProductHandler(productService),
		Orders:    handler.NewOrderHandler(orderService),
		Reports:   handler.NewReportHandler(reportService),
		System: handler.NewSystemHandler(snapshots, func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
	}, middleware.RequireAuth(tokens, operatorRepo))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !wsHub.Join(c) {
			return
		}
		defer wsHub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zlog.Panic("server stopped", zap.Error(err))
		}
	}()
	zlog.Info("order desk listening", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	wsHub.Stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	zlog.Info("server exited")
}
