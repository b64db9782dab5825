// Package costing casos de uso de costeo: carga un snapshot del catálogo de la empresa y
// de la tabla de unidades, ejecuta los motores de dominio y arma las respuestas.
package costing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
	costingdom "github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/menu"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
	"github.com/jhoicas/Cocina-api/internal/domain/scaling"
)

var one = decimal.NewFromInt(1)

// snapshot catálogo y unidades congelados para un cálculo de nivel superior.
type snapshot struct {
	catalog *costingdom.MemoryCatalog
	units   costingdom.UnitTable
	costs   *costingdom.RecipeCostEngine
	scaler  *scaling.Engine
}

// catalogLoader lee productos y recetas de la empresa en una sola transacción.
type catalogLoader struct {
	tx    ports.CatalogTxRunner
	units *costingdom.UnitRegistry
	log   zerolog.Logger
}

func (l catalogLoader) load(ctx context.Context, companyID string) (*snapshot, error) {
	var (
		products []*entity.Product
		recipes  []*entity.Recipe
	)
	err := l.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, recipeRepo repository.RecipeRepository) error {
		var err error
		if products, err = productRepo.ListAllByCompany(ctx, companyID); err != nil {
			return fmt.Errorf("cargar productos: %w", err)
		}
		if recipes, err = recipeRepo.ListAllByCompany(ctx, companyID); err != nil {
			return fmt.Errorf("cargar recetas: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	catalog := costingdom.NewMemoryCatalog(products, recipes)
	units := l.units.Snapshot()
	return &snapshot{
		catalog: catalog,
		units:   units,
		costs:   costingdom.NewRecipeCostEngine(catalog, units, l.log),
		scaler:  scaling.NewEngine(catalog),
	}, nil
}

func weightRows(rows []scaling.IngredientRow) []costingdom.WeightRow {
	out := make([]costingdom.WeightRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.WeightRow())
	}
	return out
}

// recipeCost costeo base de la receta (factor 1).
func (s *snapshot) recipeCost(recipe *entity.Recipe) *dto.RecipeCostResponse {
	rows := s.scaler.GetScaledIngredients(recipe, one)
	weight := s.costs.ComputeTotalWeightG(weightRows(rows))
	breakdown := s.costs.CostBreakdown(recipe)

	lines := make([]dto.IngredientCostDTO, 0, len(breakdown))
	for i, l := range breakdown {
		line := dto.IngredientCostDTO{
			Type:   string(l.Ingredient.Type),
			RefID:  l.Ingredient.RefID,
			Amount: l.Ingredient.Amount,
			Unit:   l.Ingredient.Unit,
			Cost:   l.Cost,
		}
		if i < len(rows) {
			line.DisplayName = rows[i].DisplayName
		}
		lines = append(lines, line)
	}

	out := &dto.RecipeCostResponse{
		RecipeID:      recipe.ID,
		RecipeName:    recipe.Name,
		YieldAmount:   recipe.YieldAmount,
		YieldUnit:     recipe.YieldUnit,
		TotalCost:     s.costs.ComputeRecipeCost(recipe),
		CostPerUnit:   s.costs.GetRecipeCostPerUnit(recipe),
		TotalWeightG:  weight.TotalG,
		Unconvertible: weight.Unconvertible,
		Lines:         lines,
		SellingPrice:  recipe.SellingPrice,
	}
	if recipe.Kind == entity.RecipeKindDish && recipe.SellingPrice.IsPositive() {
		pct := out.CostPerUnit.Div(recipe.SellingPrice).Mul(decimal.NewFromInt(100))
		out.FoodCostPct = &pct
	}
	return out
}

// scaled receta escalada por factor, con filas, mise en place, peso y costo escalado.
func (s *snapshot) scaled(recipe *entity.Recipe, factor, target decimal.Decimal) *dto.ScaledRecipeResponse {
	rows := s.scaler.GetScaledIngredients(recipe, factor)
	weight := s.costs.ComputeTotalWeightG(weightRows(rows))

	ings := make([]dto.ScaledIngredientDTO, 0, len(rows))
	for _, r := range rows {
		ings = append(ings, dto.ScaledIngredientDTO{
			Type:           string(r.Type),
			RefID:          r.RefID,
			DisplayName:    r.DisplayName,
			Found:          r.Found,
			Amount:         r.Amount,
			ScaledAmount:   r.ScaledAmount,
			Unit:           r.Unit,
			AvailableUnits: r.AvailableUnits,
		})
	}
	prepRows := scaling.GetScaledPrepItems(recipe, factor)
	prep := make([]dto.ScaledPrepItemDTO, 0, len(prepRows))
	for _, p := range prepRows {
		prep = append(prep, dto.ScaledPrepItemDTO{
			Category:       p.Category,
			Name:           p.Name,
			Quantity:       p.Quantity,
			ScaledQuantity: p.ScaledQuantity,
			Unit:           p.Unit,
			Notes:          p.Notes,
		})
	}
	return &dto.ScaledRecipeResponse{
		RecipeID:       recipe.ID,
		RecipeName:     recipe.Name,
		TargetQuantity: target,
		YieldUnit:      recipe.YieldUnit,
		Factor:         factor,
		Ingredients:    ings,
		PrepItems:      prep,
		MiseCategories: usecase.ToMiseCategoriesDTO(recipe.PrepItems),
		TotalWeightG:   weight.TotalG,
		Unconvertible:  weight.Unconvertible,
		ScaledCost:     s.costs.ComputeRecipeCost(menu.ScaleRecipe(recipe, factor)),
	}
}
