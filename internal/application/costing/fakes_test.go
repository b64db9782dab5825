package costing_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── repositorios en memoria ───────────────────────────────────────────────────

// sameTx corre la lectura del catálogo directo sobre los repos en memoria.
type sameTx struct {
	products repository.ProductRepository
	recipes  repository.RecipeRepository
	err      error
}

func (s sameTx) RunCatalog(_ context.Context, fn func(repository.ProductRepository, repository.RecipeRepository) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(s.products, s.recipes)
}

type memProducts struct {
	mu    sync.Mutex
	items map[string]*entity.Product
}

func newMemProducts(ps ...*entity.Product) *memProducts {
	m := &memProducts{items: map[string]*entity.Product{}}
	for _, p := range ps {
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.ID] = p
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[p.ID] = p
	return nil
}

func (m *memProducts) ListByCompany(ctx context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	return m.ListAllByCompany(ctx, companyID)
}

func (m *memProducts) ListAllByCompany(_ context.Context, companyID string) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range m.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memRecipes struct {
	mu    sync.Mutex
	items map[string]*entity.Recipe
}

func newMemRecipes(rs ...*entity.Recipe) *memRecipes {
	m := &memRecipes{items: map[string]*entity.Recipe{}}
	for _, r := range rs {
		m.items[r.ID] = r
	}
	return m
}

func (m *memRecipes) Create(_ context.Context, r *entity.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[r.ID] = r
	return nil
}

func (m *memRecipes) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *memRecipes) Update(_ context.Context, r *entity.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[r.ID] = r
	return nil
}

func (m *memRecipes) ListByCompany(ctx context.Context, companyID string, _ entity.RecipeKind, _, _ int) ([]*entity.Recipe, error) {
	return m.ListAllByCompany(ctx, companyID)
}

func (m *memRecipes) ListAllByCompany(_ context.Context, companyID string) ([]*entity.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Recipe{}
	for _, r := range m.items {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRecipes) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memEvents struct {
	items map[string]*entity.MenuEvent
}

func newMemEvents(es ...*entity.MenuEvent) *memEvents {
	m := &memEvents{items: map[string]*entity.MenuEvent{}}
	for _, e := range es {
		m.items[e.ID] = e
	}
	return m
}

func (m *memEvents) Create(_ context.Context, e *entity.MenuEvent) error {
	m.items[e.ID] = e
	return nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (*entity.MenuEvent, error) {
	return m.items[id], nil
}

func (m *memEvents) Update(_ context.Context, e *entity.MenuEvent) error {
	m.items[e.ID] = e
	return nil
}

func (m *memEvents) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.MenuEvent, error) {
	out := []*entity.MenuEvent{}
	for _, e := range m.items {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEvents) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

// ── generador de fichas ───────────────────────────────────────────────────────

type captureGenerator struct {
	recipe     *dto.RecipeSheet
	production *dto.ProductionSheet
	err        error
}

func (g *captureGenerator) GenerateRecipeSheet(_ context.Context, s *dto.RecipeSheet) ([]byte, error) {
	g.recipe = s
	return []byte("%PDF-ficha"), g.err
}

func (g *captureGenerator) GenerateProductionSheet(_ context.Context, s *dto.ProductionSheet) ([]byte, error) {
	g.production = s
	return []byte("%PDF-produccion"), g.err
}

// ── fixture ───────────────────────────────────────────────────────────────────

// Tomate: 0.01 por gramo, rendimiento 0.5; 1 kg cuesta 1000/0.5*0.01 = 20.
// Salsa rinde 4 unidades (5 c/u); el plato lleva 1 unidad de salsa y se vende a 20.
func fixture() (*memProducts, *memRecipes) {
	tomate := &entity.Product{
		ID: "tomate", CompanyID: "c1", Name: "Tomate", BaseUnit: "gram",
		BuyPriceGlobal: dec("0.01"), YieldFactor: dec("0.5"),
		PurchaseOptions: []entity.PurchaseOption{{UnitSymbol: "kg", ConversionRate: dec("0.001")}},
	}
	salsa := &entity.Recipe{
		ID: "salsa", CompanyID: "c1", Name: "Salsa de tomate", Kind: entity.RecipeKindPreparation,
		YieldAmount: dec("4"), YieldUnit: "unidad",
		Ingredients: []entity.Ingredient{{Type: entity.IngredientTypeProduct, RefID: "tomate", Amount: dec("1"), Unit: "kg"}},
		PrepItems:   []entity.PrepItem{{Category: "Cortes", Name: "Ajo picado", Quantity: dec("10"), Unit: "gram"}},
	}
	plato := &entity.Recipe{
		ID: "plato", CompanyID: "c1", Name: "Pasta pomodoro", Kind: entity.RecipeKindDish,
		YieldAmount: dec("1"), YieldUnit: "porcion", SellingPrice: dec("20"),
		Ingredients: []entity.Ingredient{{Type: entity.IngredientTypeRecipe, RefID: "salsa", Amount: dec("1"), Unit: "unidad"}},
	}
	ajena := &entity.Recipe{ID: "ajena", CompanyID: "c2", Name: "Otra empresa", YieldAmount: dec("1")}
	return newMemProducts(tomate), newMemRecipes(salsa, plato, ajena)
}
