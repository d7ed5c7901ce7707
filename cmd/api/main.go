package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/simpleshop-api/internal/application/inventory"
	"github.com/tu-usuario/simpleshop-api/internal/application/orders"
	"github.com/tu-usuario/simpleshop-api/internal/application/storefront"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/audit"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/cache"
	"github.com/tu-usuario/simpleshop-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/simpleshop-api/internal/interfaces/http"
	"github.com/tu-usuario/simpleshop-api/pkg/config"
	"github.com/tu-usuario/simpleshop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de catálogo: Redis si está configurado, si no un no-op.
	var catalogCache cache.CatalogCache = cache.NoopCatalogCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCatalogCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, catálogo sin cache")
		} else {
			catalogCache = redisCache
			defer redisCache.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de catálogo en Redis")
		}
	}

	// Sink de auditoría: Kafka si hay brokers, si no el log estructurado.
	var auditSink audit.Sink = audit.NewLogSink(log)
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		auditSink = kafkaSink
		defer kafkaSink.Close()
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("auditoría hacia Kafka")
	}

	ledger := inventory.NewStockLedger()
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, ledger, movementRepo, auditSink, catalogCache)
	fulfillmentUC := orders.NewFulfillmentUseCase(txRunner, tenantRepo, orderRepo, ledger, auditSink, catalogCache)
	cancellationUC := orders.NewCancellationUseCase(txRunner, ledger, auditSink, catalogCache)
	storefrontUC := storefront.NewStorefrontUseCase(tenantRepo, productRepo, catalogCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		Fulfillment:      fulfillmentUC,
		Cancellation:     cancellationUC,
		Storefront:       storefrontUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
