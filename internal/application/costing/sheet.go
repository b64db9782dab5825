package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
)

// SheetUseCase fichas imprimibles: ficha técnica de costeo y hoja de producción de evento.
type SheetUseCase struct {
	recipes   *RecipeCostingUseCase
	events    *EventCostingUseCase
	generator ports.CostingSheetGenerator
}

// NewSheetUseCase construye el caso de uso.
func NewSheetUseCase(recipes *RecipeCostingUseCase, events *EventCostingUseCase, generator ports.CostingSheetGenerator) *SheetUseCase {
	return &SheetUseCase{recipes: recipes, events: events, generator: generator}
}

// RecipeSheet PDF con el costeo base y la receta escalada a target (nil = rendimiento propio).
func (uc *SheetUseCase) RecipeSheet(ctx context.Context, companyID, recipeID string, target *decimal.Decimal) ([]byte, string, error) {
	cost, err := uc.recipes.RecipeCost(ctx, companyID, recipeID)
	if err != nil {
		return nil, "", err
	}
	scaled, err := uc.recipes.Scale(ctx, companyID, recipeID, target)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateRecipeSheet(ctx, &dto.RecipeSheet{
		GeneratedAt: time.Now(),
		Cost:        *cost,
		Scaled:      *scaled,
	})
	if err != nil {
		return nil, "", fmt.Errorf("ficha de costeo: %w", err)
	}
	return pdf, fmt.Sprintf("ficha-costeo-%s.pdf", recipeID), nil
}

// ProductionSheet PDF de producción del evento.
func (uc *SheetUseCase) ProductionSheet(ctx context.Context, companyID, eventID string) ([]byte, string, error) {
	sheet, err := uc.events.ProductionSheet(ctx, companyID, eventID)
	if err != nil {
		return nil, "", err
	}
	sheet.GeneratedAt = time.Now()
	pdf, err := uc.generator.GenerateProductionSheet(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("hoja de producción: %w", err)
	}
	return pdf, fmt.Sprintf("produccion-%s.pdf", eventID), nil
}
