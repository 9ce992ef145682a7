package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/config"
	"github.com/keremavan/feed-engine/internal/handler"
	"github.com/keremavan/feed-engine/internal/importer"
	"github.com/keremavan/feed-engine/internal/infra/postgresql"
	"github.com/keremavan/feed-engine/internal/infra/postgresql/migrations"
	infraredis "github.com/keremavan/feed-engine/internal/infra/redis"
	"github.com/keremavan/feed-engine/internal/observability"
	"github.com/keremavan/feed-engine/internal/queue"
	"github.com/keremavan/feed-engine/internal/repository"
	"github.com/keremavan/feed-engine/internal/service"
	"github.com/keremavan/feed-engine/internal/transport"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(cfg.RedisURL, cfg.RedisPoolSize)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	mq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatal("rabbitmq initialization failed", zap.Error(err))
	}
	defer mq.Close()

	keyCache, err := infraredis.NewKeyCache(rdb, logger)
	if err != nil {
		logger.Fatal("key cache initialization failed", zap.Error(err))
	}

	rateLimiter, err := infraredis.NewRedisRateLimiter(rdb, cfg.ImportsPerMinute)
	if err != nil {
		logger.Fatal("rate limiter initialization failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	employeeImporter, err := importer.NewBatchImporter(
		repository.NewEmployeeBatchConnector(db), importer.EmployeeTarget{}, cfg.CSVDelimiter, keyCache, logger)
	if err != nil {
		logger.Fatal("employee importer initialization failed", zap.Error(err))
	}
	inventoryImporter, err := importer.NewBatchImporter(
		repository.NewInventoryBatchConnector(db), importer.InventoryTarget{}, cfg.CSVDelimiter, keyCache, logger)
	if err != nil {
		logger.Fatal("inventory importer initialization failed", zap.Error(err))
	}

	employeeService, err := service.NewEmployeeService(repository.NewGormEmployeeRepo(db), keyCache, logger)
	if err != nil {
		logger.Fatal("employee service initialization failed", zap.Error(err))
	}
	inventoryService, err := service.NewInventoryService(repository.NewGormInventoryRepo(db), keyCache, logger)
	if err != nil {
		logger.Fatal("inventory service initialization failed", zap.Error(err))
	}
	productService, err := service.NewProductService(repository.NewGormProductRepo(db), logger)
	if err != nil {
		logger.Fatal("product service initialization failed", zap.Error(err))
	}
	importService, err := service.NewImportService(
		map[string]service.FileImporter{
			importer.EmployeeTarget{}.Name():  employeeImporter,
			importer.InventoryTarget{}.Name(): inventoryImporter,
		},
		queue.NewRabbitMQPublisher(mq),
		metrics,
		cfg.ScanConcurrency,
		logger,
	)
	if err != nil {
		logger.Fatal("import service initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})
	app.Use(metrics.HTTPMiddleware())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(metrics.Handler())(c.Context())
		return nil
	})

	handler.RegisterHealthRoutes(app, sqlDB, rdb, mq)
	if err := handler.RegisterEmployeeRoutes(app, employeeService); err != nil {
		logger.Fatal("employee routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterInventoryRoutes(app, inventoryService); err != nil {
		logger.Fatal("inventory routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterProductRoutes(app, productService); err != nil {
		logger.Fatal("product routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterImportRoutes(app, importService, rateLimiter, cfg.InputDir); err != nil {
		logger.Fatal("import routes registration failed", zap.Error(err))
	}

	go func() {
		logger.Info("feed-engine api started", zap.Int("port", cfg.APIPort))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.APIPort)); err != nil {
			logger.Fatal("api server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}
