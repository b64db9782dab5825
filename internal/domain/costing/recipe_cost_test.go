package costing_test

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

func newEngine(products []*entity.Product, recipes []*entity.Recipe) *costing.RecipeCostEngine {
	return costing.NewRecipeCostEngine(
		costing.NewMemoryCatalog(products, recipes),
		costing.NewUnitTable(costing.DefaultUnits()),
		zerolog.Nop(),
	)
}

func productIng(id, amount, unit string) entity.Ingredient {
	return entity.Ingredient{Type: entity.IngredientTypeProduct, RefID: id, Amount: dec(amount), Unit: unit}
}

func recipeIng(id, amount, unit string) entity.Ingredient {
	return entity.Ingredient{Type: entity.IngredientTypeRecipe, RefID: id, Amount: dec(amount), Unit: unit}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ── costo de productos ────────────────────────────────────────────────────────

func TestComputeRecipeCost_ProductoSinOpcionAplicaRendimiento(t *testing.T) {
	harina := &entity.Product{ID: "harina", BuyPriceGlobal: dec("100"), YieldFactor: dec("0.9"), BaseUnit: "gram"}
	recipe := &entity.Recipe{ID: "r1", YieldAmount: dec("1"), Ingredients: []entity.Ingredient{productIng("harina", "1000", "gram")}}

	got := newEngine([]*entity.Product{harina}, nil).ComputeRecipeCost(recipe)
	assertDec(t, "111111.11", got.Round(2))
}

func TestComputeRecipeCost_OverrideDePrecioTienePrioridad(t *testing.T) {
	leche := &entity.Product{
		ID: "leche", BuyPriceGlobal: dec("999"), YieldFactor: decimal.Zero, BaseUnit: "ml",
		PurchaseOptions: []entity.PurchaseOption{
			{UnitSymbol: "caja", ConversionRate: dec("12"), PriceOverride: ptr(dec("30"))},
		},
	}
	recipe := &entity.Recipe{ID: "r1", Ingredients: []entity.Ingredient{productIng("leche", "2", " Caja ")}}

	got := newEngine([]*entity.Product{leche}, nil).ComputeRecipeCost(recipe)
	assertDec(t, "60", got, "override ignora precio global y rendimiento")
}

func TestComputeRecipeCost_OpcionSinOverrideConvierteALaBase(t *testing.T) {
	azucar := &entity.Product{
		ID: "azucar", BuyPriceGlobal: dec("0.01"), YieldFactor: dec("1"), BaseUnit: "gram",
		PurchaseOptions: []entity.PurchaseOption{{UnitSymbol: "kg", ConversionRate: dec("0.001")}},
	}
	recipe := &entity.Recipe{ID: "r1", Ingredients: []entity.Ingredient{productIng("azucar", "2", "kg")}}

	got := newEngine([]*entity.Product{azucar}, nil).ComputeRecipeCost(recipe)
	assertDec(t, "20", got)
}

func TestComputeRecipeCost_SinOpcionCoincidente(t *testing.T) {
	sal := &entity.Product{ID: "sal", BuyPriceGlobal: dec("2"), YieldFactor: dec("1"), BaseUnit: "gram"}
	recipe := &entity.Recipe{ID: "r1", Ingredients: []entity.Ingredient{productIng("sal", "500", "gram")}}

	assertDec(t, "1000", newEngine([]*entity.Product{sal}, nil).ComputeRecipeCost(recipe))
}

func TestComputeRecipeCost_RendimientoCeroAportaCero(t *testing.T) {
	p := &entity.Product{ID: "p", BuyPriceGlobal: dec("5"), YieldFactor: decimal.Zero}
	recipe := &entity.Recipe{ID: "r1", Ingredients: []entity.Ingredient{productIng("p", "10", "gram")}}

	assertDec(t, "0", newEngine([]*entity.Product{p}, nil).ComputeRecipeCost(recipe))
}

func TestComputeRecipeCost_ReferenciasFaltantesAportanCero(t *testing.T) {
	recipe := &entity.Recipe{ID: "r1", Ingredients: []entity.Ingredient{
		productIng("no-existe", "10", "gram"),
		recipeIng("tampoco", "1", "liter"),
		{Type: "otro", RefID: "x", Amount: dec("1")},
	}}

	assertDec(t, "0", newEngine(nil, nil).ComputeRecipeCost(recipe))
}

func TestComputeRecipeCost_RecetaVaciaONil(t *testing.T) {
	e := newEngine(nil, nil)
	assertDec(t, "0", e.ComputeRecipeCost(nil))
	assertDec(t, "0", e.ComputeRecipeCost(&entity.Recipe{ID: "vacia"}))
	assertDec(t, "0", e.GetRecipeCostPerUnit(nil))
}

// ── sub-recetas ───────────────────────────────────────────────────────────────

func TestComputeRecipeCost_SubRecetaNormalizaUnidadDeRendimiento(t *testing.T) {
	tomate := &entity.Product{ID: "tomate", BuyPriceGlobal: dec("2"), YieldFactor: dec("1")}
	salsa := &entity.Recipe{
		ID: "salsa", Kind: entity.RecipeKindPreparation, YieldAmount: dec("2"), YieldUnit: "liter",
		Ingredients: []entity.Ingredient{productIng("tomate", "2", "gram")},
	}
	plato := &entity.Recipe{ID: "plato", Ingredients: []entity.Ingredient{recipeIng("salsa", "500", "ml")}}

	e := newEngine([]*entity.Product{tomate}, []*entity.Recipe{salsa, plato})
	assertDec(t, "4", e.ComputeRecipeCost(salsa))
	assertDec(t, "2", e.GetRecipeCostPerUnit(salsa))
	assertDec(t, "1", e.ComputeRecipeCost(plato), "500 ml = 0.5 liter a 2 por liter")
}

func TestComputeRecipeCost_AutorreferenciaSeTruncaEnProfundidadMaxima(t *testing.T) {
	p := &entity.Product{ID: "p", BuyPriceGlobal: dec("10"), YieldFactor: dec("1")}
	loop := &entity.Recipe{ID: "loop", YieldAmount: dec("1"), YieldUnit: "porcion"}
	loop.Ingredients = []entity.Ingredient{
		productIng("p", "1", "gram"),
		recipeIng("loop", "1", "porcion"),
	}

	got := newEngine([]*entity.Product{p}, []*entity.Recipe{loop}).ComputeRecipeCost(loop)
	assertDec(t, "50", got, "cada nivel 0..4 suma 10, el nivel 5 aporta 0")
}

func TestComputeRecipeCost_CadenaMasProfundaQueElLimite(t *testing.T) {
	p := &entity.Product{ID: "p", BuyPriceGlobal: dec("1"), YieldFactor: dec("1")}
	recipes := make([]*entity.Recipe, 0, 8)
	for i := 0; i < 8; i++ {
		r := &entity.Recipe{
			ID: fmt.Sprintf("r%d", i), YieldAmount: dec("1"), YieldUnit: "porcion",
			Ingredients: []entity.Ingredient{productIng("p", "1", "gram")},
		}
		if i < 7 {
			r.Ingredients = append(r.Ingredients, recipeIng(fmt.Sprintf("r%d", i+1), "1", "porcion"))
		}
		recipes = append(recipes, r)
	}

	e := newEngine([]*entity.Product{p}, recipes)
	assertDec(t, "5", e.ComputeRecipeCost(recipes[0]))
	assertDec(t, "1", e.ComputeRecipeCost(recipes[7]))
}

func TestGetRecipeCostPerUnit_RendimientoMenorAUnoSeTomaComoUno(t *testing.T) {
	p := &entity.Product{ID: "p", BuyPriceGlobal: dec("1"), YieldFactor: dec("1")}
	recipe := &entity.Recipe{ID: "r", YieldAmount: dec("4"), Ingredients: []entity.Ingredient{productIng("p", "10", "gram")}}
	e := newEngine([]*entity.Product{p}, nil)

	assertDec(t, "2.5", e.GetRecipeCostPerUnit(recipe))
	recipe.YieldAmount = dec("0.5")
	assertDec(t, "10", e.GetRecipeCostPerUnit(recipe))
}

func TestComputeIngredientCost(t *testing.T) {
	p := &entity.Product{ID: "p", BuyPriceGlobal: dec("3"), YieldFactor: dec("1")}
	e := newEngine([]*entity.Product{p}, nil)

	assertDec(t, "12", e.ComputeIngredientCost(productIng("p", "4", "gram")))
}

func TestCostBreakdown_SumaIgualAlTotal(t *testing.T) {
	a := &entity.Product{ID: "a", BuyPriceGlobal: dec("3"), YieldFactor: dec("0.75")}
	b := &entity.Product{ID: "b", BuyPriceGlobal: dec("1.2"), YieldFactor: dec("1")}
	base := &entity.Recipe{ID: "base", YieldAmount: dec("3"), YieldUnit: "kg", Ingredients: []entity.Ingredient{productIng("b", "7", "gram")}}
	recipe := &entity.Recipe{ID: "r", Ingredients: []entity.Ingredient{
		productIng("a", "2", "gram"),
		recipeIng("base", "500", "gram"),
		productIng("falta", "1", "gram"),
	}}
	e := newEngine([]*entity.Product{a, b}, []*entity.Recipe{base, recipe})

	lines := e.CostBreakdown(recipe)
	require.Len(t, lines, 3)
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Cost)
	}
	assertDec(t, e.ComputeRecipeCost(recipe).String(), sum)
	assertDec(t, "0", lines[2].Cost)
	assert.Nil(t, e.CostBreakdown(nil))
}

// ── conversión de unidades ────────────────────────────────────────────────────

func TestNormalizeToRecipeYieldUnit(t *testing.T) {
	e := newEngine(nil, nil)

	assertDec(t, "2000", e.NormalizeToRecipeYieldUnit(dec("2"), "kg", "gram"))
	assertDec(t, "0.25", e.NormalizeToRecipeYieldUnit(dec("250"), "ml", "liter"))
	assertDec(t, "7", e.NormalizeToRecipeYieldUnit(dec("7"), "manojo", "manojo"), "misma unidad pasa sin tocar")
	assertDec(t, "7", e.NormalizeToRecipeYieldUnit(dec("7"), "manojo", "atado"), "desconocidas usan factor 1")
}

func TestNormalizeToRecipeYieldUnit_FactorDestinoCero(t *testing.T) {
	units := costing.UnitTable{"gram": dec("1"), "nada": decimal.Zero}
	e := costing.NewRecipeCostEngine(nil, units, zerolog.Nop())

	assertDec(t, "5", e.NormalizeToRecipeYieldUnit(dec("5"), "gram", "nada"))
}

func TestConvertToBaseUnits_UnidadDesconocida(t *testing.T) {
	e := newEngine(nil, nil)
	assertDec(t, "1500", e.ConvertToBaseUnits(dec("1.5"), "KG"))
	assertDec(t, "3", e.ConvertToBaseUnits(dec("3"), "unidad"))
}

func TestComputeTotalWeightG_ReportaNoConvertiblesSinDuplicar(t *testing.T) {
	e := newEngine(nil, nil)

	res := e.ComputeTotalWeightG([]costing.WeightRow{
		{Name: "harina", NetAmount: dec("1"), Unit: "kg"},
		{Name: "leche", NetAmount: dec("500"), Unit: "ml"},
		{Name: "huevos", NetAmount: dec("3"), Unit: "unidad"},
		{Name: "huevos", NetAmount: dec("2"), Unit: "unidad"},
	})
	assertDec(t, "1505", res.TotalG)
	assert.Equal(t, []string{"huevos"}, res.Unconvertible)
}

func TestComputeTotalWeightG_SinFilas(t *testing.T) {
	res := newEngine(nil, nil).ComputeTotalWeightG(nil)
	assertDec(t, "0", res.TotalG)
	assert.NotNil(t, res.Unconvertible)
	assert.Empty(t, res.Unconvertible)
}
