package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cocina-api/internal/application/costing"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
	"github.com/jhoicas/Cocina-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UnitUC        *usecase.UnitUseCase
	ProductUC     *usecase.ProductUseCase
	RecipeUC      *usecase.RecipeUseCase
	EventUC       *usecase.MenuEventUseCase
	RecipeCosting *costing.RecipeCostingUseCase
	EventCosting  *costing.EventCostingUseCase
	Sheets        *costing.SheetUseCase
	JWTSecret     string
	JWTIssuer     string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Units (tabla global; borrar solo admin o chef)
	units := api.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Get("/", unitHandler.List)
	units.Post("/", unitHandler.Register)
	units.Delete("/:name", RequireRole(jwt.RoleAdmin, jwt.RoleChef), unitHandler.Delete)

	// Calculadoras de conversión
	conversions := api.Group("/conversions")
	conversionHandler := NewConversionHandler()
	conversions.Post("/net-cost", conversionHandler.NetCost)
	conversions.Post("/waste", conversionHandler.Waste)
	conversions.Post("/yield", conversionHandler.Yield)
	conversions.Post("/waste-quantity", conversionHandler.WasteQuantity)
	conversions.Post("/waste-percent", conversionHandler.WastePercent)
	conversions.Post("/suggested-price", conversionHandler.SuggestedPrice)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Recipes
	recipes := api.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC, deps.RecipeCosting, deps.Sheets)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
	recipes.Get("/:id/cost", recipeHandler.Cost)
	recipes.Get("/:id/scale", recipeHandler.Scale)
	recipes.Get("/:id/costing-sheet", recipeHandler.CostingSheet)

	// Events (preview antes de /:id)
	events := api.Group("/events")
	eventHandler := NewEventHandler(deps.EventUC, deps.EventCosting, deps.Sheets)
	events.Post("/preview", eventHandler.Preview)
	events.Post("/", eventHandler.Create)
	events.Get("/", eventHandler.List)
	events.Get("/:id", eventHandler.GetByID)
	events.Put("/:id", eventHandler.Update)
	events.Delete("/:id", eventHandler.Delete)
	events.Get("/:id/cost", eventHandler.Cost)
	events.Get("/:id/production-sheet", eventHandler.ProductionSheet)
}
