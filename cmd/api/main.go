package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-inventory/internal/config"
	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/handler"
	"go-pos-inventory/internal/orderclient"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/repository/memory"
	"go-pos-inventory/internal/seed"
	"go-pos-inventory/internal/service"
	"go-pos-inventory/internal/ws"
	"go-pos-inventory/pkg/database"
	"go-pos-inventory/pkg/jwt"
	"go-pos-inventory/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.LoadEnv()

	zlog, err := logger.New(logger.Config{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// 2. Setup storage. Carts are session state and always live in memory.
	mem, err := memory.NewStore()
	if err != nil {
		zlog.Fatal("init memory store", zap.Error(err))
	}
	repos, err := openRepositories(cfg, mem, zlog)
	if err != nil {
		zlog.Fatal("open store", zap.Error(err))
	}
	carts := memory.NewCartRepo(mem)

	// 3. Setup WebSocket Hub and event sinks
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsHub := ws.NewHub(zlog)
	go wsHub.Run(ctx)

	publishers := event.Fanout{event.NewWSPublisher(wsHub)}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := event.NewKafkaPublisher(event.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		defer func() {
			if err := kp.Close(); err != nil {
				zlog.Warn("close kafka writer", zap.Error(err))
			}
		}()
		publishers = append(publishers, kp)
		zlog.Info("Kafka events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 4. Dependency Injection (Wiring Layers)
	threshold := cfg.POS.LowStockThreshold
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)

	warehouseService := service.NewWarehouseService(repos.Warehouses, zlog)
	catalogService := service.NewCatalogService(repos.Products, publishers, zlog)
	notificationService := service.NewNotificationService(repos.Notifications, publishers, zlog)
	inventoryService := service.NewInventoryService(catalogService, repos.Warehouses, notificationService, threshold, publishers, zlog)
	transferService := service.NewTransferService(repos.Transfers, repos.Warehouses, catalogService, notificationService, threshold, publishers, zlog)
	categoryService := service.NewCategoryService(repos.Categories)
	customerService := service.NewCustomerService(repos.Customers)
	staffService := service.NewStaffService(repos.Staff)
	authService := service.NewAuthService(repos.Staff, tokens)
	cartService := service.NewCartService(carts, catalogService)
	orderService := service.NewOrderService(
		repos.Orders,
		carts,
		orderclient.New(orderclient.Config{BaseURL: cfg.OrderService.BaseURL, Timeout: cfg.OrderService.Timeout}, zlog),
		service.OrderServiceConfig{CheckoutDelay: cfg.POS.CheckoutDelay, StoreName: cfg.Server.AppName},
		publishers,
		zlog,
	)
	dashService := service.NewDashboardService(repos, threshold)

	// 5. Seed admin and demo data
	if err := seed.EnsureAdmin(staffService, zlog); err != nil {
		zlog.Warn("seed admin", zap.Error(err))
	}
	if cfg.Store.SeedDemo {
		err := seed.Demo(seed.Deps{
			Warehouses: warehouseService,
			Catalog:    catalogService,
			Categories: categoryService,
			Customers:  customerService,
			Staff:      staffService,
			Transfers:  repos.Transfers,
		}, zlog)
		if err != nil {
			zlog.Warn("seed demo data", zap.Error(err))
		}
	}

	h := handlers{
		auth:          handler.NewAuthHandler(authService, staffService),
		dashboard:     handler.NewDashboardHandler(dashService),
		warehouses:    handler.NewWarehouseHandler(warehouseService),
		products:      handler.NewProductHandler(catalogService),
		inventory:     handler.NewInventoryHandler(inventoryService),
		transfers:     handler.NewTransferHandler(transferService),
		categories:    handler.NewCategoryHandler(categoryService),
		customers:     handler.NewCustomerHandler(customerService),
		staff:         handler.NewStaffHandler(staffService),
		notifications: handler.NewNotificationHandler(notificationService),
		pos:           handler.NewPOSHandler(cartService, orderService),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	registerRoutes(app, h, authService, wsHub)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zlog.Panic("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
	cancel()
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}

// openRepositories picks the backing store from STORE_DRIVER.
func openRepositories(cfg *config.Config, mem *memory.Store, zlog *zap.Logger) (*repository.Repositories, error) {
	if cfg.Store.Driver != config.DriverPostgres {
		zlog.Info("Using in-memory store")
		return memory.NewRepositories(mem), nil
	}

	db, err := database.ConnectDB(database.Config{
		URL:      cfg.Postgres.URL,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Name:     cfg.Postgres.DBName,
		TimeZone: cfg.Postgres.TimeZone,
	}, zlog)
	if err != nil {
		return nil, err
	}
	// Auto Migrate (in production, prefer a separate migration tool)
	if err := repository.Migrate(db); err != nil {
		return nil, err
	}
	return repository.NewGormRepositories(db), nil
}
