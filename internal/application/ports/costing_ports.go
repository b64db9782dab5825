package ports

import (
	"context"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn con repositorios atados a una misma transacción de lectura:
// productos y recetas de un snapshot de costeo salen del mismo instante.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		products repository.ProductRepository,
		recipes repository.RecipeRepository,
	) error) error
}

// CostCache caché del costeo base de recetas por empresa.
//
// GetRecipeCost devuelve además la versión vigente de la caché de la empresa; SetRecipeCost
// guarda bajo esa versión, así un Invalidate ocurrido mientras se calculaba deja el valor
// inalcanzable en lugar de servir un costo viejo.
type CostCache interface {
	GetRecipeCost(ctx context.Context, companyID, recipeID string) (cost *dto.RecipeCostResponse, version string, err error)
	SetRecipeCost(ctx context.Context, companyID, version string, cost *dto.RecipeCostResponse) error
	// Invalidate descarta lo cacheado de la empresa; companyID vacío descarta todas
	// (cambios en la tabla global de unidades).
	Invalidate(ctx context.Context, companyID string) error
}

// CostingSheetGenerator puerto de salida para las fichas imprimibles (PDF).
type CostingSheetGenerator interface {
	GenerateRecipeSheet(ctx context.Context, sheet *dto.RecipeSheet) ([]byte, error)
	GenerateProductionSheet(ctx context.Context, sheet *dto.ProductionSheet) ([]byte, error)
}
