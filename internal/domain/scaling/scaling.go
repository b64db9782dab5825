// Package scaling produce las filas escaladas de una receta para una cantidad objetivo
// (ingredientes con sus unidades seleccionables y mise en place).
package scaling

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// NotFoundLabel nombre mostrado cuando la referencia del ingrediente no existe.
const NotFoundLabel = "(not found)"

// IngredientRow fila de ingrediente escalado para mostrar/editar.
type IngredientRow struct {
	Type           entity.IngredientType
	RefID          string
	DisplayName    string
	Found          bool
	Amount         decimal.Decimal
	ScaledAmount   decimal.Decimal
	Unit           string
	AvailableUnits []string
}

// WeightRow adapta la fila al cálculo de peso agregado del motor de costeo.
func (r IngredientRow) WeightRow() costing.WeightRow {
	return costing.WeightRow{Name: r.DisplayName, NetAmount: r.ScaledAmount, Unit: r.Unit}
}

// Engine escala recetas resolviendo nombres y unidades contra el catálogo.
type Engine struct {
	catalog costing.Catalog
}

// NewEngine construye el motor de escalado.
func NewEngine(catalog costing.Catalog) *Engine {
	if catalog == nil {
		catalog = costing.NewMemoryCatalog(nil, nil)
	}
	return &Engine{catalog: catalog}
}

// GetScaleFactor target / YieldAmount; 1 si la receta no tiene rendimiento positivo.
func GetScaleFactor(recipe *entity.Recipe, targetQuantity decimal.Decimal) decimal.Decimal {
	if recipe == nil || !recipe.YieldAmount.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return targetQuantity.Div(recipe.YieldAmount)
}

// GetScaledIngredients una fila por ingrediente con la cantidad multiplicada por factor.
func (e *Engine) GetScaledIngredients(recipe *entity.Recipe, factor decimal.Decimal) []IngredientRow {
	if recipe == nil {
		return []IngredientRow{}
	}
	rows := make([]IngredientRow, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		row := IngredientRow{
			Type:         ing.Type,
			RefID:        ing.RefID,
			DisplayName:  NotFoundLabel,
			Amount:       ing.Amount,
			ScaledAmount: ing.Amount.Mul(factor),
			Unit:         ing.Unit,
		}
		var candidates []string
		switch ing.Type {
		case entity.IngredientTypeProduct:
			if p, ok := e.catalog.FindProductByID(ing.RefID); ok && p != nil {
				row.DisplayName, row.Found = p.Name, true
				candidates = append(candidates, p.BaseUnit)
				for _, opt := range p.PurchaseOptions {
					candidates = append(candidates, opt.UnitSymbol)
				}
			}
		case entity.IngredientTypeRecipe:
			if r, ok := e.catalog.FindRecipeByID(ing.RefID); ok && r != nil {
				row.DisplayName, row.Found = r.Name, true
				candidates = append(candidates, r.YieldUnit)
			}
		}
		row.AvailableUnits = availableUnits(ing.Unit, candidates)
		rows = append(rows, row)
	}
	return rows
}

// availableUnits pone la unidad actual primero, aunque venga vacía, para que siempre sea
// seleccionable. Del resto descarta vacíos y repetidos conservando el orden.
func availableUnits(current string, candidates []string) []string {
	current = strings.TrimSpace(current)
	out := make([]string, 0, len(candidates)+1)
	out = append(out, current)
	seen := map[string]struct{}{current: {}}
	for _, u := range candidates {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
