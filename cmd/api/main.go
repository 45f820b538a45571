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

	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/internal/infrastructure/memory"
	"github.com/jhoicas/activos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/activos-api/internal/infrastructure/redislock"
	httpRouter "github.com/jhoicas/activos-api/internal/interfaces/http"
	"github.com/jhoicas/activos-api/pkg/config"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// backend repositorios de lectura y el TxRunner de las operaciones de movimiento.
type backend struct {
	txRunner inventory.TxRunner
	assets   repository.AssetRepository
	moves    repository.MovementRepository
	stores   repository.StoreRepository
	close    func()
}

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
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer be.close()

	// Candado por activo entre instancias; sin Redis basta el bloqueo de fila.
	var locker inventory.AssetLocker
	if cfg.Redis.Enabled() {
		rdb := redislock.NewClient(cfg.Redis)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("redis no disponible, se continúa sin candado distribuido")
		} else {
			locker = redislock.New(rdb, cfg.Redis.LockTTL, log.Named("redislock"))
		}
	}

	assetUC := usecase.NewAssetUseCase(be.assets)
	storeUC := usecase.NewStoreUseCase(be.stores)
	transferUC := inventory.NewTransferUseCase(be.txRunner, locker)
	receiptUC := inventory.NewReceiptUseCase(be.txRunner, locker)
	directUC := inventory.NewAssetMovementUseCase(be.txRunner, locker)
	historyUC := inventory.NewHistoryUseCase(be.assets, be.moves, be.stores)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Activos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.Store})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AssetUC:   assetUC,
		StoreUC:   storeUC,
		Transfer:  transferUC,
		Receipt:   receiptUC,
		Direct:    directUC,
		History:   historyUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		Logger:    log.Named("api"),
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

// openBackend elige la persistencia según APP_STORE. memory no sobrevive a un reinicio.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.App.Store == config.StoreMemory {
		db := memory.NewStore()
		return &backend{
			txRunner: db,
			assets:   db.Assets(),
			moves:    db.Movements(),
			stores:   db.Stores(),
			close:    func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		txRunner: postgres.NewTxRunner(pool),
		assets:   postgres.NewAssetRepository(pool),
		moves:    postgres.NewMovementRepository(pool),
		stores:   postgres.NewStoreRepository(pool),
		close:    pool.Close,
	}, nil
}
