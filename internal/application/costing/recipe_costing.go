package costing

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
	"github.com/jhoicas/Cocina-api/internal/domain"
	costingdom "github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/scaling"
)

// RecipeCostingUseCase costeo y escalado de recetas.
type RecipeCostingUseCase struct {
	loader catalogLoader
	cache  ports.CostCache
	log    zerolog.Logger
}

// NewRecipeCostingUseCase construye el caso de uso.
func NewRecipeCostingUseCase(
	catalog ports.CatalogTxRunner,
	units *costingdom.UnitRegistry,
	cache ports.CostCache,
	log zerolog.Logger,
) *RecipeCostingUseCase {
	return &RecipeCostingUseCase{
		loader: catalogLoader{tx: catalog, units: units, log: log},
		cache:  cache,
		log:    log,
	}
}

// RecipeCost costeo base de la receta. Se sirve desde caché si hay una entrada vigente;
// un fallo de la caché se registra y no interrumpe el cálculo.
func (uc *RecipeCostingUseCase) RecipeCost(ctx context.Context, companyID, recipeID string) (*dto.RecipeCostResponse, error) {
	cached, version, err := uc.cache.GetRecipeCost(ctx, companyID, recipeID)
	if err != nil {
		uc.log.Warn().Err(err).Str("recipe_id", recipeID).Msg("caché de costos no disponible")
	}
	if cached != nil {
		return cached, nil
	}

	snap, err := uc.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	recipe, ok := snap.catalog.FindRecipeByID(recipeID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := snap.recipeCost(recipe)

	if err := uc.cache.SetRecipeCost(ctx, companyID, version, out); err != nil {
		uc.log.Warn().Err(err).Str("recipe_id", recipeID).Msg("no se pudo cachear el costo")
	}
	return out, nil
}

// Scale escala la receta a target (en su unidad de rendimiento). target nil usa el
// rendimiento propio de la receta.
func (uc *RecipeCostingUseCase) Scale(ctx context.Context, companyID, recipeID string, target *decimal.Decimal) (*dto.ScaledRecipeResponse, error) {
	if target != nil && !target.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	snap, err := uc.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	recipe, ok := snap.catalog.FindRecipeByID(recipeID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	qty := recipe.YieldAmount
	if target != nil {
		qty = *target
	}
	return snap.scaled(recipe, scaling.GetScaleFactor(recipe, qty), qty), nil
}
