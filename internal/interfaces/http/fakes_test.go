package http_test

import (
	"context"
	"sync"

	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

// Repositorios en memoria con la misma semántica que los de Postgres:
// GetByID devuelve nil, nil si no existe y los nombres son únicos por empresa.

type catalogTx struct {
	products *memProducts
	recipes  *memRecipes
}

func (c catalogTx) RunCatalog(_ context.Context, fn func(repository.ProductRepository, repository.RecipeRepository) error) error {
	return fn(c.products, c.recipes)
}

type memProducts struct {
	mu    sync.Mutex
	items map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if x.CompanyID == p.CompanyID && x.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
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
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memRecipes struct {
	mu    sync.Mutex
	items map[string]*entity.Recipe
}

func (m *memRecipes) Create(_ context.Context, r *entity.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if x.CompanyID == r.CompanyID && x.Name == r.Name {
			return domain.ErrDuplicate
		}
	}
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
	if _, ok := m.items[r.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[r.ID] = r
	return nil
}

func (m *memRecipes) ListByCompany(ctx context.Context, companyID string, kind entity.RecipeKind, _, _ int) ([]*entity.Recipe, error) {
	all, _ := m.ListAllByCompany(ctx, companyID)
	out := []*entity.Recipe{}
	for _, r := range all {
		if kind == "" || r.Kind == kind {
			out = append(out, r)
		}
	}
	return out, nil
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
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memEvents struct {
	mu    sync.Mutex
	items map[string]*entity.MenuEvent
}

func (m *memEvents) Create(_ context.Context, e *entity.MenuEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[e.ID] = e
	return nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (*entity.MenuEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *memEvents) Update(_ context.Context, e *entity.MenuEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[e.ID] = e
	return nil
}

func (m *memEvents) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.MenuEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.MenuEvent{}
	for _, e := range m.items {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEvents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memUnits struct {
	mu    sync.Mutex
	items map[string]*entity.Unit
}

func (m *memUnits) Create(_ context.Context, u *entity.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := costing.NormalizeUnitKey(u.Name)
	if _, ok := m.items[key]; ok {
		return domain.ErrUnitAlreadyExists
	}
	m.items[key] = u
	return nil
}

func (m *memUnits) List(_ context.Context) ([]*entity.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Unit{}
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUnits) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, costing.NormalizeUnitKey(name))
	return nil
}
