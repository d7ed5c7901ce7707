package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/simpleshop-api/internal/application/inventory"
	"github.com/tu-usuario/simpleshop-api/internal/application/orders"
	"github.com/tu-usuario/simpleshop-api/internal/application/storefront"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	Fulfillment      *orders.FulfillmentUseCase
	Cancellation     *orders.CancellationUseCase
	Storefront       *storefront.StorefrontUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Tienda pública (sin token, el tenant sale del slug)
	store := api.Group("/store/:slug")
	storefrontHandler := NewStorefrontHandler(deps.Storefront, deps.Fulfillment)
	store.Get("/", storefrontHandler.GetStoreInfo)
	store.Get("/products", storefrontHandler.GetProducts)
	store.Get("/products/:id", storefrontHandler.GetProduct)
	store.Post("/orders", storefrontHandler.CreateOrder)

	// Rutas protegidas del panel (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory", RequireRole("admin", "staff"))
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Orders (protegido; cancelar es solo admin)
	ordersGroup := protected.Group("/orders", RequireRole("admin", "staff"))
	orderHandler := NewOrderHandler(deps.Fulfillment, deps.Cancellation)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/cancel", RequireRole("admin"), orderHandler.Cancel)
}
