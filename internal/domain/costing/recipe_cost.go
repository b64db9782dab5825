package costing

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// MaxRecursionDepth profundidad máxima de sub-recetas. Al alcanzarla el costo de la rama es 0:
// un ciclo en el grafo sub-reporta el costo en lugar de fallar.
const MaxRecursionDepth = 5

// IngredientCost costo de una línea de ingrediente de primer nivel.
type IngredientCost struct {
	Ingredient entity.Ingredient
	Cost       decimal.Decimal
}

// RecipeCostEngine calcula costos recorriendo el grafo receta → ingrediente.
// Nunca devuelve error: referencias faltantes, ciclos y unidades desconocidas degradan a
// costo 0 o a conversión identidad, porque los formularios consultan el costo mientras se
// edita con datos incompletos.
type RecipeCostEngine struct {
	catalog Catalog
	units   UnitTable
	log     zerolog.Logger
}

// NewRecipeCostEngine construye el motor. units debe ser un snapshot tomado al inicio del cálculo.
func NewRecipeCostEngine(catalog Catalog, units UnitTable, log zerolog.Logger) *RecipeCostEngine {
	if units == nil {
		units = UnitTable{}
	}
	if catalog == nil {
		catalog = NewMemoryCatalog(nil, nil)
	}
	return &RecipeCostEngine{catalog: catalog, units: units, log: log}
}

// ComputeRecipeCost costo total de la receta (suma de sus ingredientes de primer nivel).
func (e *RecipeCostEngine) ComputeRecipeCost(recipe *entity.Recipe) decimal.Decimal {
	return e.computeRecipeCost(recipe, 0)
}

// GetRecipeCostPerUnit costo por unidad de rendimiento: total / max(1, YieldAmount).
func (e *RecipeCostEngine) GetRecipeCostPerUnit(recipe *entity.Recipe) decimal.Decimal {
	if recipe == nil {
		return decimal.Zero
	}
	return e.ComputeRecipeCost(recipe).Div(atLeastOne(recipe.YieldAmount))
}

// ComputeIngredientCost costo de un ingrediente evaluado como raíz (profundidad 0).
func (e *RecipeCostEngine) ComputeIngredientCost(ing entity.Ingredient) decimal.Decimal {
	return e.ingredientCost(ing, 0)
}

// CostBreakdown costo por línea de los ingredientes de primer nivel.
// La suma coincide con ComputeRecipeCost.
func (e *RecipeCostEngine) CostBreakdown(recipe *entity.Recipe) []IngredientCost {
	if recipe == nil {
		return nil
	}
	lines := make([]IngredientCost, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		lines = append(lines, IngredientCost{Ingredient: ing, Cost: e.ingredientCost(ing, 0)})
	}
	return lines
}

func (e *RecipeCostEngine) computeRecipeCost(recipe *entity.Recipe, depth int) decimal.Decimal {
	if depth >= MaxRecursionDepth {
		ev := e.log.Warn().Int("depth", depth)
		if recipe != nil {
			ev = ev.Str("recipe_id", recipe.ID)
		}
		ev.Msg("costeo: profundidad máxima de sub-recetas alcanzada, rama truncada")
		return decimal.Zero
	}
	if recipe == nil || len(recipe.Ingredients) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, ing := range recipe.Ingredients {
		total = total.Add(e.ingredientCost(ing, depth))
	}
	return total
}

func (e *RecipeCostEngine) ingredientCost(ing entity.Ingredient, depth int) decimal.Decimal {
	switch ing.Type {
	case entity.IngredientTypeProduct:
		return e.productCost(ing)
	case entity.IngredientTypeRecipe:
		return e.subRecipeCost(ing, depth)
	default:
		e.log.Debug().Str("type", string(ing.Type)).Str("ref_id", ing.RefID).Msg("costeo: tipo de ingrediente desconocido")
		return decimal.Zero
	}
}

// productCost: con override, cantidad * override. Sin override la cantidad se lleva a la
// unidad base dividiendo por la tasa de la opción y se aplica (cantidad/rendimiento)*precio.
// Sin opción coincidente se asume que la cantidad ya está en la unidad base.
func (e *RecipeCostEngine) productCost(ing entity.Ingredient) decimal.Decimal {
	product, ok := e.catalog.FindProductByID(ing.RefID)
	if !ok || product == nil {
		e.log.Debug().Str("product_id", ing.RefID).Msg("costeo: producto no encontrado, aporta 0")
		return decimal.Zero
	}

	opt, hasOpt := matchPurchaseOption(product, ing.Unit)
	if hasOpt && opt.HasPriceOverride() {
		return ing.Amount.Mul(*opt.PriceOverride)
	}

	if !product.YieldFactor.IsPositive() {
		e.log.Warn().Str("product_id", product.ID).Str("yield_factor", product.YieldFactor.String()).
			Msg("costeo: rendimiento no positivo, producto omitido")
		return decimal.Zero
	}

	amount := ing.Amount
	if hasOpt && opt.ConversionRate.IsPositive() {
		amount = amount.Div(opt.ConversionRate)
	}
	return amount.Div(product.YieldFactor).Mul(product.BuyPriceGlobal)
}

func (e *RecipeCostEngine) subRecipeCost(ing entity.Ingredient, depth int) decimal.Decimal {
	sub, ok := e.catalog.FindRecipeByID(ing.RefID)
	if !ok || sub == nil {
		e.log.Debug().Str("recipe_id", ing.RefID).Msg("costeo: sub-receta no encontrada, aporta 0")
		return decimal.Zero
	}
	costPerUnit := e.computeRecipeCost(sub, depth+1).Div(atLeastOne(sub.YieldAmount))
	qty := e.NormalizeToRecipeYieldUnit(ing.Amount, ing.Unit, sub.YieldUnit)
	return qty.Mul(costPerUnit)
}

// NormalizeToRecipeYieldUnit convierte amount de fromUnit a toUnit pasando por la unidad base.
// Unidades idénticas pasan sin tocar el valor; factor destino 0 devuelve amount.
func (e *RecipeCostEngine) NormalizeToRecipeYieldUnit(amount decimal.Decimal, fromUnit, toUnit string) decimal.Decimal {
	if fromUnit == toUnit {
		return amount
	}
	fromFactor := e.factor(fromUnit)
	toFactor := e.factor(toUnit)
	if toFactor.IsZero() {
		return amount
	}
	return amount.Mul(fromFactor).Div(toFactor)
}

func (e *RecipeCostEngine) factor(unit string) decimal.Decimal {
	f, ok := e.units.Lookup(unit)
	if !ok {
		e.log.Debug().Str("unit", unit).Msg("costeo: unidad sin conversión, se usa factor 1")
		return one
	}
	return f
}

func matchPurchaseOption(p *entity.Product, unit string) (entity.PurchaseOption, bool) {
	key := NormalizeUnitKey(unit)
	for _, opt := range p.PurchaseOptions {
		if NormalizeUnitKey(opt.UnitSymbol) == key {
			return opt, true
		}
	}
	return entity.PurchaseOption{}, false
}

func atLeastOne(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(one, d)
}

