package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas sobre PostgreSQL. ingredients y prep_items son JSONB.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

const recipeColumns = `id, company_id, name, kind, yield_amount, yield_unit, ingredients, prep_items, selling_price, created_at, updated_at`

func (r *RecipeRepo) Create(ctx context.Context, recipe *entity.Recipe) error {
	query := `INSERT INTO recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		recipe.ID, recipe.CompanyID, recipe.Name, recipe.Kind, recipe.YieldAmount, recipe.YieldUnit,
		jsonList(recipe.Ingredients), jsonList(recipe.PrepItems), recipe.SellingPrice,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	rec, err := scanRecipe(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

func (r *RecipeRepo) Update(ctx context.Context, recipe *entity.Recipe) error {
	query := `
		UPDATE recipes SET name = $2, kind = $3, yield_amount = $4, yield_unit = $5,
			ingredients = $6, prep_items = $7, selling_price = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		recipe.ID, recipe.Name, recipe.Kind, recipe.YieldAmount, recipe.YieldUnit,
		jsonList(recipe.Ingredients), jsonList(recipe.PrepItems), recipe.SellingPrice, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista recetas de la empresa; kind vacío no filtra.
func (r *RecipeRepo) ListByCompany(ctx context.Context, companyID string, kind entity.RecipeKind, limit, offset int) ([]*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes
		WHERE company_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY name LIMIT $3 OFFSET $4`
	return r.list(ctx, query, companyID, string(kind), limit, offset)
}

func (r *RecipeRepo) ListAllByCompany(ctx context.Context, companyID string) ([]*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE company_id = $1`
	return r.list(ctx, query, companyID)
}

func (r *RecipeRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Recipe, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Delete no toca recetas que la usen como sub-receta: esas líneas pasan a costar 0.
func (r *RecipeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.Name, &rec.Kind, &rec.YieldAmount, &rec.YieldUnit,
		&rec.Ingredients, &rec.PrepItems, &rec.SellingPrice, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
