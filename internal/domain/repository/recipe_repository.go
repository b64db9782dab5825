package repository

import (
	"context"

	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// RecipeRepository persistencia de recetas (ingredientes y mise en place en JSONB).
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	ListByCompany(ctx context.Context, companyID string, kind entity.RecipeKind, limit, offset int) ([]*entity.Recipe, error)
	ListAllByCompany(ctx context.Context, companyID string) ([]*entity.Recipe, error)
	Delete(ctx context.Context, id string) error
}
