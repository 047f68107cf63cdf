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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/estoque-eletronicos/docs"
	appanalytics "github.com/jhoicas/estoque-eletronicos/internal/application/analytics"
	"github.com/jhoicas/estoque-eletronicos/internal/application/auth"
	"github.com/jhoicas/estoque-eletronicos/internal/application/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/application/usecase"
	"github.com/jhoicas/estoque-eletronicos/internal/domain/repository"
	"github.com/jhoicas/estoque-eletronicos/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-eletronicos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/estoque-eletronicos/internal/interfaces/http"
	"github.com/jhoicas/estoque-eletronicos/pkg/config"
	"github.com/jhoicas/estoque-eletronicos/pkg/logger"
)

// backend agrupa los adaptadores de persistencia del driver elegido.
type backend struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	profiles  repository.ProfileRepository
	users     repository.UserRepository
	sessions  repository.SessionRepository
	tx        inventory.TxRunner
	signUpTx  auth.SignUpTxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.StoreDriver).
		Bool("enforce_non_negative", cfg.Stock.EnforceNonNegative).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: sign-in fallará hasta configurarlo")
	}

	ctx := context.Background()
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer store.close()

	registerMovementUC := inventory.NewRegisterMovementUseCase(store.tx, store.products, log, inventory.Options{
		EnforceNonNegative: cfg.Stock.EnforceNonNegative,
	})
	ledgerUC := inventory.NewLedgerUseCase(store.movements, store.products)
	productUC := usecase.NewProductUseCase(store.products, store.tx)
	profileUC := usecase.NewProfileUseCase(store.profiles)
	dashboardUC := appanalytics.NewDashboardUseCase(store.products, store.movements)
	authUC := auth.NewAuthUseCase(store.signUpTx, store.users, store.profiles, store.sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreDriver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		ProfileUC:        profileUC,
		RegisterMovement: registerMovementUC,
		LedgerUC:         ledgerUC,
		DashboardUC:      dashboardUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
		Logger:           log,
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

// openBackend elige PostgreSQL o el store en memoria según STORE_DRIVER.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.New()
		return &backend{
			products:  s.Products(),
			movements: s.Movements(),
			profiles:  s.Profiles(),
			users:     s.Users(),
			sessions:  s.Sessions(),
			tx:        s,
			signUpTx:  s,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	txRunner := postgres.NewTxRunner(pool)
	return &backend{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		profiles:  postgres.NewProfileRepository(pool),
		users:     postgres.NewUserRepository(pool),
		sessions:  postgres.NewSessionRepository(pool),
		tx:        txRunner,
		signUpTx:  txRunner,
		close:     pool.Close,
	}, nil
}
