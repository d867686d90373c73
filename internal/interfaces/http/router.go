package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nagane/franchise-api/internal/application/catalog"
	"github.com/nagane/franchise-api/internal/application/order"
	"github.com/nagane/franchise-api/internal/application/stock"
	"github.com/nagane/franchise-api/pkg/jwt"
)

// RouterDeps router dependencies.
type RouterDeps struct {
	StockUC   *stock.UseCase
	CatalogUC *catalog.UseCase
	OrderUC   *order.UseCase
	JWTSecret string
}

// Router registers the API routes. Everything under /api requires a Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Stocks
	stockHandler := NewStockHandler(deps.StockUC)
	stocks := api.Group("/stocks")
	stocks.Post("/", stockHandler.CreateStock)
	stocks.Patch("/:id", stockHandler.UpdateStock)
	stocks.Delete("/:id", stockHandler.DeleteStock)

	// Store scoped reads
	stores := api.Group("/stores/:storeId", RequireStoreAccess("storeId"))
	stores.Get("/stocks", stockHandler.GetStockList)
	orderHandler := NewOrderHandler(deps.OrderUC)
	stores.Get("/orders", orderHandler.List)

	// Purchase orders
	poHandler := NewPurchaseOrderHandler(deps.StockUC)
	pos := api.Group("/purchase-orders")
	pos.Post("/", poHandler.Create)
	pos.Get("/", adminOnly, poHandler.List)
	pos.Get("/sheet", adminOnly, poHandler.Sheet)
	pos.Patch("/:id", adminOnly, poHandler.Update)
	pos.Delete("/:id", poHandler.Delete)

	// Catalog
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", adminOnly, catalogHandler.CreateCategory)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Patch("/:id", adminOnly, catalogHandler.UpdateCategory)
	categories.Delete("/:id", adminOnly, catalogHandler.DeleteCategory)

	menus := api.Group("/menus")
	menus.Get("/", catalogHandler.ListMenus)
	menus.Get("/:id", catalogHandler.GetMenu)
}
