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

	"github.com/nagane/franchise-api/internal/application/catalog"
	"github.com/nagane/franchise-api/internal/application/order"
	"github.com/nagane/franchise-api/internal/application/stock"
	"github.com/nagane/franchise-api/internal/domain/repository"
	"github.com/nagane/franchise-api/internal/infrastructure/events"
	"github.com/nagane/franchise-api/internal/infrastructure/memory"
	infrapdf "github.com/nagane/franchise-api/internal/infrastructure/pdf"
	"github.com/nagane/franchise-api/internal/infrastructure/postgres"
	"github.com/nagane/franchise-api/internal/infrastructure/seed"
	httpRouter "github.com/nagane/franchise-api/internal/interfaces/http"
	"github.com/nagane/franchise-api/pkg/config"
	"github.com/nagane/franchise-api/pkg/logger"
)

// adapters is the persistence wiring for one DB driver.
type adapters struct {
	stockRepos stock.Repos
	tx         stock.TxRunner
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("starting")

	ctx := context.Background()
	db, err := openAdapters(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistence")
	}
	defer db.close()

	var publisher stock.EventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka))
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("close kafka writer")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("purchase order events enabled")
	}

	join := stock.JoinMode(cfg.Stock.PurchaseOrderJoin)
	if join == stock.JoinLegacy {
		log.Warn().Msg("STOCK_PO_JOIN=legacy: stock lists attach the latest purchase order of the stock whose id equals the store id to every row")
	}

	stockUC := stock.NewUseCase(db.stockRepos, db.tx, publisher, infrapdf.NewSheetRenderer(cfg.App.Name), join, log.Named("stock"))
	catalogUC := catalog.NewUseCase(db.categories, db.stockRepos.Menus)
	orderUC := order.NewUseCase(db.stockRepos.Stores, db.orders, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Franchise API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:   stockUC,
		CatalogUC: catalogUC,
		OrderUC:   orderUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}

func openAdapters(ctx context.Context, cfg *config.Config, log *logger.Logger) (*adapters, error) {
	if cfg.DB.Driver == "memory" {
		mem := memory.NewDB()
		if cfg.Seed.File != "" {
			if err := loadSeed(mem, cfg.Seed); err != nil {
				return nil, err
			}
			log.Info().Str("file", cfg.Seed.File).Msg("catalog seeded")
		}
		return &adapters{
			stockRepos: mem.StockRepos(),
			tx:         memory.NewTxRunner(mem),
			categories: memory.NewCategoryRepository(mem),
			orders:     memory.NewOrderRepository(mem),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("schema migrated")
	}
	return &adapters{
		stockRepos: postgres.StockRepos(pool),
		tx:         postgres.NewTxRunner(pool),
		categories: postgres.NewCategoryRepository(pool),
		orders:     postgres.NewOrderRepository(pool),
		close:      pool.Close,
	}, nil
}

func loadSeed(db *memory.DB, cfg config.SeedConfig) error {
	f, err := os.Open(cfg.File)
	if err != nil {
		return err
	}
	defer f.Close()
	c, err := seed.Parse(f, cfg.Charset)
	if err != nil {
		return err
	}
	c.Apply(db)
	return nil
}
