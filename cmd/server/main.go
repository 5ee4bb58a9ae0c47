package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"crm/internal/config"
	"crm/internal/database"
	"crm/internal/handlers"
	"crm/internal/logger"
	"crm/internal/middleware"
	"crm/internal/repositories"
	"crm/internal/services"
	"crm/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("migrating database", zap.Error(err))
	}
	zapLogger.Info("database connected", zap.String("driver", cfg.Database.Driver))

	// RabbitMQ is an optional collaborator: with no URL configured the
	// services simply skip event publishing.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			zapLogger.Fatal("connecting to RabbitMQ", zap.Error(err))
		}
		defer mqClient.Close()
		zapLogger.Info("RabbitMQ connected")

		go func() {
			err := mqClient.Consume("crm_events", func(msg amqp.Delivery) error {
				zapLogger.Info("event received",
					zap.String("routing_key", msg.RoutingKey),
					zap.ByteString("body", msg.Body))
				return nil
			})
			if err != nil {
				zapLogger.Error("event consumer stopped", zap.Error(err))
			}
		}()
	}

	// Repositories
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// Services
	customerService := services.NewCustomerService(customerRepo)
	productService := services.NewProductService(productRepo, mqClient, zapLogger,
		cfg.Restock.Threshold, cfg.Restock.Increment)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo, mqClient, zapLogger)
	reportService := services.NewReportService(customerRepo, orderRepo)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)

	// Handlers
	customerHandler := handlers.NewCustomerHandler(customerService, zapLogger)
	productHandler := handlers.NewProductHandler(productService, zapLogger)
	orderHandler := handlers.NewOrderHandler(orderService, zapLogger)
	reportHandler := handlers.NewReportHandler(reportService, zapLogger)
	authHandler := handlers.NewAuthHandler(authService, zapLogger)

	app := fiber.New()
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	// Queries stay open so the scheduled jobs can poll them; mutations
	// get the bearer-token guard when auth is enabled.
	queries := apiV1
	mutations := apiV1
	if cfg.Auth.Required {
		mutations = apiV1.Group("", middleware.AuthRequired(authService, zapLogger))
	}

	customerHandler.RegisterRoutes(queries, mutations)
	productHandler.RegisterRoutes(queries, mutations)
	orderHandler.RegisterRoutes(queries, mutations)
	reportHandler.RegisterRoutes(queries)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zapLogger.Info("starting server", zap.String("addr", cfg.Server.Port))
		if err := app.Listen(cfg.Server.Port); err != nil {
			zapLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		zapLogger.Error("error during shutdown", zap.Error(err))
	}
	zapLogger.Info("server stopped gracefully")
}
