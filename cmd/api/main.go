package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Cocina-api/internal/application/costing"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
	costingdom "github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Cocina-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cocina-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cocina-api/internal/interfaces/http"
	"github.com/jhoicas/Cocina-api/pkg/config"
	"github.com/jhoicas/Cocina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	productRepo := postgres.NewProductRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	eventRepo := postgres.NewMenuEventRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)

	// Caché de costos: Redis si hay REDIS_ADDR; si no, sin caché.
	var costCache ports.CostCache = cache.NoopCostCache{}
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no responde; se calcula sin caché hasta que vuelva")
		}
		costCache = cache.NewRedisCostCache(client, cfg.Costing.CacheTTL)
	}

	registry := costingdom.NewUnitRegistry(nil)
	unitUC := usecase.NewUnitUseCase(registry, unitRepo, costCache, log.Component("units"))
	if err := unitUC.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("registro de unidades")
	}

	productUC := usecase.NewProductUseCase(productRepo, costCache, log.Component("products"))
	recipeUC := usecase.NewRecipeUseCase(recipeRepo, costCache, log.Component("recipes"))
	eventUC := usecase.NewMenuEventUseCase(eventRepo)

	catalogTx := postgres.NewTxRunner(pool)
	recipeCosting := costing.NewRecipeCostingUseCase(catalogTx, registry, costCache, log.Component("costing"))
	eventCosting := costing.NewEventCostingUseCase(catalogTx, eventRepo, registry, log.Component("menu"))

	// PDF: fichas de costeo y hojas de producción
	sheetGenerator := infrapdf.NewMarotoSheetGenerator(cfg.App.Name)
	sheetUC := costing.NewSheetUseCase(recipeCosting, eventCosting, sheetGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cocina API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "units": len(registry.Units())})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UnitUC:        unitUC,
		ProductUC:     productUC,
		RecipeUC:      recipeUC,
		EventUC:       eventUC,
		RecipeCosting: recipeCosting,
		EventCosting:  eventCosting,
		Sheets:        sheetUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
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
