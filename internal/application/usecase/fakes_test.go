package usecase_test

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

var errDB = errors.New("conexión perdida")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

// spyCache registra invalidaciones; puede fallar a pedido.
type spyCache struct {
	invalidated []string
	err         error
}

func (s *spyCache) GetRecipeCost(context.Context, string, string) (*dto.RecipeCostResponse, string, error) {
	return nil, "", nil
}

func (s *spyCache) SetRecipeCost(context.Context, string, string, *dto.RecipeCostResponse) error {
	return nil
}

func (s *spyCache) Invalidate(_ context.Context, companyID string) error {
	s.invalidated = append(s.invalidated, companyID)
	return s.err
}

type productRepo struct {
	items map[string]*entity.Product
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.items[id], nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *productRepo) ListByCompany(ctx context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	return r.ListAllByCompany(ctx, companyID)
}

func (r *productRepo) ListAllByCompany(_ context.Context, companyID string) ([]*entity.Product, error) {
	out := []*entity.Product{}
	for _, p := range r.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type recipeRepo struct {
	items map[string]*entity.Recipe
}

func (r *recipeRepo) Create(_ context.Context, x *entity.Recipe) error {
	r.items[x.ID] = x
	return nil
}

func (r *recipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	return r.items[id], nil
}

func (r *recipeRepo) Update(_ context.Context, x *entity.Recipe) error {
	r.items[x.ID] = x
	return nil
}

func (r *recipeRepo) ListByCompany(_ context.Context, companyID string, kind entity.RecipeKind, _, _ int) ([]*entity.Recipe, error) {
	out := []*entity.Recipe{}
	for _, x := range r.items {
		if x.CompanyID == companyID && (kind == "" || x.Kind == kind) {
			out = append(out, x)
		}
	}
	return out, nil
}

func (r *recipeRepo) ListAllByCompany(ctx context.Context, companyID string) ([]*entity.Recipe, error) {
	return r.ListByCompany(ctx, companyID, "", 0, 0)
}

func (r *recipeRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type eventRepo struct {
	items map[string]*entity.MenuEvent
}

func (r *eventRepo) Create(_ context.Context, e *entity.MenuEvent) error {
	r.items[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(_ context.Context, id string) (*entity.MenuEvent, error) {
	return r.items[id], nil
}

func (r *eventRepo) Update(_ context.Context, e *entity.MenuEvent) error {
	r.items[e.ID] = e
	return nil
}

func (r *eventRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.MenuEvent, error) {
	out := []*entity.MenuEvent{}
	for _, e := range r.items {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *eventRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

// unitRepo persistencia de unidades con fallos inyectables.
type unitRepo struct {
	items     []*entity.Unit
	createErr error
	deleteErr error
	listErr   error
}

func (r *unitRepo) Create(_ context.Context, u *entity.Unit) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items = append(r.items, u)
	return nil
}

func (r *unitRepo) List(_ context.Context) ([]*entity.Unit, error) {
	return r.items, r.listErr
}

func (r *unitRepo) Delete(_ context.Context, name string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, u := range r.items {
		if u.Name == name {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
