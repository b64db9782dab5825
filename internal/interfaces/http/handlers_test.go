package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/Cocina-api/internal/application/costing"
	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/infrastructure/cache"
	"github.com/jhoicas/Cocina-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Cocina-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Cocina-api/pkg/jwt"
)

const otherCompanyID = "00000000-0000-0000-0000-000000000099"

// newAPI arma la API completa sobre repositorios en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	log := zerolog.Nop()
	products := &memProducts{items: map[string]*entity.Product{}}
	recipes := &memRecipes{items: map[string]*entity.Recipe{}}
	events := &memEvents{items: map[string]*entity.MenuEvent{}}
	units := &memUnits{items: map[string]*entity.Unit{}}
	registry := costing.NewUnitRegistry(nil)
	costCache := cache.NoopCostCache{}

	unitUC := usecase.NewUnitUseCase(registry, units, costCache, log)
	require.NoError(t, unitUC.Load(context.Background()))

	catalog := catalogTx{products: products, recipes: recipes}
	recipeCosting := appcosting.NewRecipeCostingUseCase(catalog, registry, costCache, log)
	eventCosting := appcosting.NewEventCostingUseCase(catalog, events, registry, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		UnitUC:        unitUC,
		ProductUC:     usecase.NewProductUseCase(products, costCache, log),
		RecipeUC:      usecase.NewRecipeUseCase(recipes, costCache, log),
		EventUC:       usecase.NewMenuEventUseCase(events),
		RecipeCosting: recipeCosting,
		EventCosting:  eventCosting,
		Sheets:        appcosting.NewSheetUseCase(recipeCosting, eventCosting, pdf.NewMarotoSheetGenerator("test")),
		JWTSecret:     testJWTSecret,
		JWTIssuer:     testIssuer,
	})
	return app
}

func bearer(t *testing.T, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call envía la petición como chef de la empresa de prueba salvo que auth indique otra cosa.
func call(t *testing.T, app *fiber.App, method, path string, body interface{}, auth ...string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if len(auth) > 0 {
		req.Header.Set("Authorization", auth[0])
	} else {
		req.Header.Set("Authorization", bearer(t, testCompanyID, pkgjwt.RoleChef))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedSalsa crea tomate (1 kg = 20) y una salsa que rinde 4 unidades.
func seedSalsa(t *testing.T, app *fiber.App) string {
	t.Helper()
	var product dto.ProductResponse
	resp := call(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Name: "Tomate", BuyPriceGlobal: dec("0.01"), WastePercent: ptr(dec("50")),
		PurchaseOptions: []dto.PurchaseOptionDTO{{UnitSymbol: "kg", ConversionRate: dec("0.001")}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &product)
	assert.True(t, dec("0.5").Equal(product.YieldFactor), "la merma se traduce a rendimiento")

	var recipe dto.RecipeResponse
	resp = call(t, app, http.MethodPost, "/api/recipes", dto.CreateRecipeRequest{
		Name: "Salsa", Kind: "preparation", YieldAmount: dec("4"), YieldUnit: "unidad",
		Ingredients: []dto.IngredientDTO{{Type: "product", RefID: product.ID, Amount: dec("1"), Unit: "kg"}},
		MiseCategories: []dto.MiseCategoryDTO{
			{Name: "Cortes", Items: []dto.PrepItemDTO{{Name: "Ajo picado", Quantity: dec("10"), Unit: "gram"}}},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &recipe)
	return recipe.ID
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ── recetas ───────────────────────────────────────────────────────────────────

func TestRecipes_CostoYEscalado(t *testing.T) {
	app := newAPI(t)
	id := seedSalsa(t, app)

	var cost dto.RecipeCostResponse
	resp := call(t, app, http.MethodGet, "/api/recipes/"+id+"/cost", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cost)
	assert.True(t, dec("20").Equal(cost.TotalCost), "obtenido %s", cost.TotalCost)
	assert.True(t, dec("5").Equal(cost.CostPerUnit))

	var scaled dto.ScaledRecipeResponse
	resp = call(t, app, http.MethodGet, "/api/recipes/"+id+"/scale?target=8", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &scaled)
	assert.True(t, dec("2").Equal(scaled.Factor))
	assert.True(t, dec("40").Equal(scaled.ScaledCost))
	require.Len(t, scaled.MiseCategories, 1)
	assert.Equal(t, "Cortes", scaled.MiseCategories[0].Name)
}

func TestRecipes_EscaladoObjetivoInvalido(t *testing.T) {
	app := newAPI(t)
	id := seedSalsa(t, app)

	resp := call(t, app, http.MethodGet, "/api/recipes/"+id+"/scale?target=mucho", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/recipes/"+id+"/scale?target=0", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecipes_OtraEmpresaNoVe(t *testing.T) {
	app := newAPI(t)
	id := seedSalsa(t, app)
	other := bearer(t, otherCompanyID, pkgjwt.RoleAdmin)

	for _, path := range []string{"/api/recipes/" + id, "/api/recipes/" + id + "/cost"} {
		resp := call(t, app, http.MethodGet, path, nil, other)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestRecipes_NombreDuplicado(t *testing.T) {
	app := newAPI(t)
	seedSalsa(t, app)

	resp := call(t, app, http.MethodPost, "/api/recipes", dto.CreateRecipeRequest{Name: "Salsa", Kind: "dish"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRecipes_FichaDeCosteoPDF(t *testing.T) {
	app := newAPI(t)
	id := seedSalsa(t, app)

	resp := call(t, app, http.MethodGet, "/api/recipes/"+id+"/costing-sheet", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ── unidades ──────────────────────────────────────────────────────────────────

func TestUnits_RegistroDuplicadoYBorradoPorRol(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/units", dto.RegisterUnitRequest{Name: " Gram ", Factor: dec("2")})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "las unidades por defecto ya existen")

	resp = call(t, app, http.MethodPost, "/api/units", dto.RegisterUnitRequest{Name: "Taza", Factor: dec("240")})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/units/taza", nil, bearer(t, testCompanyID, pkgjwt.RoleCook))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un cocinero no borra unidades")

	resp = call(t, app, http.MethodDelete, "/api/units/taza", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/units/taza", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnits_FactorInvalido(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodPost, "/api/units", dto.RegisterUnitRequest{Name: "pizca", Factor: decimal.Zero})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── conversiones ──────────────────────────────────────────────────────────────

func TestConversions(t *testing.T) {
	app := newAPI(t)

	var wy dto.WasteYieldResponse
	resp := call(t, app, http.MethodPost, "/api/conversions/waste", dto.WasteChangeRequest{Value: "12.5"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &wy)
	assert.True(t, dec("0.875").Equal(wy.YieldFactor))

	var net dto.NetCostResponse
	resp = call(t, app, http.MethodPost, "/api/conversions/net-cost", dto.NetCostRequest{
		GrossPrice: dec("100"), ConversionFactor: dec("10"), WastePercent: dec("50"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &net)
	assert.True(t, dec("20").Equal(net.NetCost))

	var v dto.ValueResponse
	resp = call(t, app, http.MethodPost, "/api/conversions/waste-percent", dto.WastePercentRequest{
		WasteQuantity: dec("20"), TotalQuantity: dec("200"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &v)
	assert.True(t, dec("10").Equal(v.Value))
}

// ── eventos ───────────────────────────────────────────────────────────────────

func TestEvents_CrearCostearYHojaDeProduccion(t *testing.T) {
	app := newAPI(t)
	salsa := seedSalsa(t, app)

	var event dto.EventResponse
	resp := call(t, app, http.MethodPost, "/api/events", dto.CreateEventRequest{
		Name: "Coctel", GuestCount: 10, ServingType: "cocktail_passed", RevenuePerGuest: dec("5"),
		Sections: []dto.MenuSectionDTO{{Name: "Pasabocas", Items: []dto.MenuItemDTO{
			{RecipeID: salsa, TakeRate: dec("1"), PiecesPerPerson: ptr(dec("2")), DerivedPortions: 999},
		}}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &event)
	assert.Equal(t, 20, event.Sections[0].Items[0].DerivedPortions, "las porciones se derivan en el servidor")

	var cost dto.EventCostResponse
	resp = call(t, app, http.MethodGet, "/api/events/"+event.ID+"/cost", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cost)
	// 20 piezas / 4 de rendimiento = factor 5 → 100; ingreso 50.
	assert.True(t, dec("100").Equal(cost.IngredientCost), "obtenido %s", cost.IngredientCost)
	assert.True(t, dec("200").Equal(cost.FoodCostPct))

	resp = call(t, app, http.MethodGet, "/api/events/"+event.ID+"/production-sheet", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestEvents_PreviewValida(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/events/preview", dto.CreateEventRequest{Name: "X", ServingType: "brunch"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var cost dto.EventCostResponse
	resp = call(t, app, http.MethodPost, "/api/events/preview", dto.CreateEventRequest{
		Name: "Borrador", GuestCount: 10, ServingType: "plated_course",
		Sections: []dto.MenuSectionDTO{{Name: "Fuertes", Items: []dto.MenuItemDTO{{RecipeID: "no-existe", TakeRate: dec("1")}}}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cost)
	require.Len(t, cost.Items, 1)
	assert.False(t, cost.Items[0].Found)
	assert.True(t, cost.IngredientCost.IsZero())
}

func TestEvents_EliminarInexistente(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodDelete, "/api/events/nada", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_SinToken(t *testing.T) {
	app := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/units", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
