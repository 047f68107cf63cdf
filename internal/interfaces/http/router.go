package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/estoque-eletronicos/internal/application/analytics"
	"github.com/jhoicas/estoque-eletronicos/internal/application/auth"
	"github.com/jhoicas/estoque-eletronicos/internal/application/inventory"
	"github.com/jhoicas/estoque-eletronicos/internal/application/usecase"
	"github.com/jhoicas/estoque-eletronicos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	ProfileUC        *usecase.ProfileUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	LedgerUC         *inventory.LedgerUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
	Logger           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	mapper := errorMapper{log: log}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, mapper)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)

	// Rutas protegidas (Bearer Token + sesión abierta)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))

	protected.Post("/auth/signout", authHandler.SignOut)
	protected.Get("/auth/session", authHandler.Session)

	profiles := protected.Group("/profiles")
	profileHandler := NewProfileHandler(deps.ProfileUC, mapper)
	profiles.Get("/:id", profileHandler.GetByID)
	profiles.Put("/:id", profileHandler.Update)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LedgerUC, mapper)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/ledger", productHandler.Ledger)
	products.Get("/:id/movements", productHandler.Movements)

	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.RegisterMovement, deps.LedgerUC, mapper)
	stock.Post("/movements", stockHandler.RegisterMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/low-stock", stockHandler.LowStock)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, mapper)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
