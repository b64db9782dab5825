// Package menu deriva porciones de un evento y agrega su costo de ingredientes.
package menu

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// buffetOverproduction sobreproducción de buffet/familiar (15%).
var buffetOverproduction = decimal.RequireFromString("1.15")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// DerivePortions porciones a producir para un ítem del menú.
// takeRate se limita a [0,1]; invitados negativos cuentan como 0.
//   - cocktail_passed: round(invitados * piezasPorPersona * takeRate)
//   - buffet_family:   round(invitados * takeRate * 1.15)
//   - plated_course y cualquier otro: round(invitados * takeRate)
func DerivePortions(servingType entity.ServingType, guestCount int, takeRate decimal.Decimal, piecesPerPerson *decimal.Decimal) int {
	if guestCount < 0 {
		guestCount = 0
	}
	guests := decimal.NewFromInt(int64(guestCount))
	rate := takeRate
	if rate.LessThan(decimal.Zero) {
		rate = decimal.Zero
	}
	if rate.GreaterThan(one) {
		rate = one
	}

	var portions decimal.Decimal
	switch servingType {
	case entity.ServingCocktailPassed:
		pieces := decimal.Zero
		if piecesPerPerson != nil && piecesPerPerson.IsPositive() {
			pieces = *piecesPerPerson
		}
		portions = guests.Mul(pieces).Mul(rate)
	case entity.ServingBuffetFamily:
		portions = guests.Mul(rate).Mul(buffetOverproduction)
	default:
		portions = guests.Mul(rate)
	}
	return int(portions.Round(0).IntPart())
}

// HydrateDerivedPortions recalcula DerivedPortions de todos los ítems del evento.
// Es el único punto que mantiene las porciones consistentes; llamarlo tras cualquier cambio
// de invitados, take-rate, estilo de servicio o piezas por persona.
func HydrateDerivedPortions(event *entity.MenuEvent) {
	if event == nil {
		return
	}
	for s := range event.Sections {
		items := event.Sections[s].Items
		for i := range items {
			items[i].DerivedPortions = DerivePortions(
				event.ServingType, event.GuestCount, items[i].TakeRate, items[i].PiecesPerPerson,
			)
		}
	}
}

// FoodCostPct (costo / (ingresoPorInvitado * invitados)) * 100; 0 si el ingreso no es positivo.
func FoodCostPct(ingredientCost, revenuePerGuest decimal.Decimal, guestCount int) decimal.Decimal {
	if !revenuePerGuest.IsPositive() || guestCount <= 0 {
		return decimal.Zero
	}
	revenue := revenuePerGuest.Mul(decimal.NewFromInt(int64(guestCount)))
	return ingredientCost.Div(revenue).Mul(hundred)
}

// ItemCost costo de un ítem del menú escalado a sus porciones derivadas.
type ItemCost struct {
	Section    string
	RecipeID   string
	RecipeName string
	Found      bool
	Portions   int
	Factor     decimal.Decimal
	Cost       decimal.Decimal
}

// EventCostReport desglose de costo del evento.
type EventCostReport struct {
	Items          []ItemCost
	IngredientCost decimal.Decimal
	Revenue        decimal.Decimal
	FoodCostPct    decimal.Decimal
}

// Engine agrega costos de un evento usando el motor de costeo por receta.
type Engine struct {
	catalog costing.Catalog
	costs   *costing.RecipeCostEngine
}

// NewEngine construye el motor. units es el snapshot de unidades del cálculo.
func NewEngine(catalog costing.Catalog, units costing.UnitTable, log zerolog.Logger) *Engine {
	if catalog == nil {
		catalog = costing.NewMemoryCatalog(nil, nil)
	}
	return &Engine{
		catalog: catalog,
		costs:   costing.NewRecipeCostEngine(catalog, units, log),
	}
}

// ComputeEventIngredientCost suma el costo de cada ítem escalado a sus porciones derivadas.
// Usa DerivedPortions tal como vienen: hidratar antes si el evento cambió.
func (e *Engine) ComputeEventIngredientCost(event *entity.MenuEvent) decimal.Decimal {
	return e.ComputeEventCostReport(event).IngredientCost
}

// ComputeFoodCostPct porcentaje de costo de alimentos sobre el ingreso del evento.
func (e *Engine) ComputeFoodCostPct(event *entity.MenuEvent) decimal.Decimal {
	if event == nil {
		return decimal.Zero
	}
	return FoodCostPct(e.ComputeEventIngredientCost(event), event.RevenuePerGuest, event.GuestCount)
}

// ComputeEventCostReport costo por ítem, total y food cost %.
func (e *Engine) ComputeEventCostReport(event *entity.MenuEvent) EventCostReport {
	report := EventCostReport{
		Items:          []ItemCost{},
		IngredientCost: decimal.Zero,
		Revenue:        decimal.Zero,
		FoodCostPct:    decimal.Zero,
	}
	if event == nil {
		return report
	}
	for _, section := range event.Sections {
		for _, item := range section.Items {
			ic := ItemCost{
				Section:  section.Name,
				RecipeID: item.RecipeID,
				Portions: item.DerivedPortions,
				Factor:   decimal.Zero,
				Cost:     decimal.Zero,
			}
			if recipe, ok := e.catalog.FindRecipeByID(item.RecipeID); ok && recipe != nil {
				ic.Found = true
				ic.RecipeName = recipe.Name
				ic.Factor = decimal.NewFromInt(int64(item.DerivedPortions)).Div(decimal.Max(one, recipe.YieldAmount))
				ic.Cost = e.costs.ComputeRecipeCost(ScaleRecipe(recipe, ic.Factor))
			}
			report.IngredientCost = report.IngredientCost.Add(ic.Cost)
			report.Items = append(report.Items, ic)
		}
	}
	if event.GuestCount > 0 && event.RevenuePerGuest.IsPositive() {
		report.Revenue = event.RevenuePerGuest.Mul(decimal.NewFromInt(int64(event.GuestCount)))
	}
	report.FoodCostPct = FoodCostPct(report.IngredientCost, event.RevenuePerGuest, event.GuestCount)
	return report
}

// ScaleRecipe copia la receta con las cantidades de ingredientes multiplicadas por factor.
// La receta original no se modifica; una receta nil devuelve nil.
func ScaleRecipe(recipe *entity.Recipe, factor decimal.Decimal) *entity.Recipe {
	if recipe == nil {
		return nil
	}
	scaled := *recipe
	scaled.Ingredients = make([]entity.Ingredient, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ing.Amount = ing.Amount.Mul(factor)
		scaled.Ingredients[i] = ing
	}
	return &scaled
}
