package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

// RecipeUseCase CRUD de recetas. No valida que las referencias existan: una referencia
// colgante cuesta 0 y se muestra como "(not found)".
type RecipeUseCase struct {
	repo  repository.RecipeRepository
	cache ports.CostCache
	log   zerolog.Logger
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(repo repository.RecipeRepository, cache ports.CostCache, log zerolog.Logger) *RecipeUseCase {
	return &RecipeUseCase{repo: repo, cache: cache, log: log}
}

func parseKind(s string) (entity.RecipeKind, bool) {
	k := entity.RecipeKind(strings.TrimSpace(s))
	return k, k == entity.RecipeKindPreparation || k == entity.RecipeKindDish
}

// Create crea una receta.
func (uc *RecipeUseCase) Create(ctx context.Context, companyID string, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	name := strings.TrimSpace(in.Name)
	kind, ok := parseKind(in.Kind)
	if name == "" || !ok || in.YieldAmount.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ings, err := toIngredients(in.Ingredients)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	recipe := &entity.Recipe{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         name,
		Kind:         kind,
		YieldAmount:  in.YieldAmount,
		YieldUnit:    strings.TrimSpace(in.YieldUnit),
		Ingredients:  ings,
		PrepItems:    toPrepItems(in.PrepItems, in.MiseCategories),
		SellingPrice: in.SellingPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

func (uc *RecipeUseCase) find(ctx context.Context, companyID, id string) (*entity.Recipe, error) {
	recipe, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil || recipe.CompanyID != companyID {
		return nil, nil
	}
	return recipe, nil
}

// GetByID nil, nil si no existe o es de otra empresa.
func (uc *RecipeUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.find(ctx, companyID, id)
	if err != nil || recipe == nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// Update actualización parcial. La mise en place se reemplaza si llega en cualquiera de
// sus dos formatos.
func (uc *RecipeUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := uc.find(ctx, companyID, id)
	if err != nil || recipe == nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		recipe.Name = name
	}
	if in.Kind != nil {
		kind, ok := parseKind(*in.Kind)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		recipe.Kind = kind
	}
	if in.YieldAmount != nil {
		if in.YieldAmount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		recipe.YieldAmount = *in.YieldAmount
	}
	if in.YieldUnit != nil {
		recipe.YieldUnit = strings.TrimSpace(*in.YieldUnit)
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		recipe.SellingPrice = *in.SellingPrice
	}
	if in.Ingredients != nil {
		ings, err := toIngredients(in.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ings
	}
	if in.PrepItems != nil || in.MiseCategories != nil {
		recipe.PrepItems = toPrepItems(in.PrepItems, in.MiseCategories)
	}
	recipe.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toRecipeResponse(recipe), nil
}

// List lista recetas; kind vacío devuelve preparaciones y platos.
func (uc *RecipeUseCase) List(ctx context.Context, companyID, kind string, limit, offset int) (*dto.RecipeListResponse, error) {
	k := entity.RecipeKind(strings.TrimSpace(kind))
	if k != "" {
		if _, ok := parseKind(kind); !ok {
			return nil, domain.ErrInvalidInput
		}
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, k, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRecipeResponse(r))
	}
	return &dto.RecipeListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina la receta.
func (uc *RecipeUseCase) Delete(ctx context.Context, companyID, id string) error {
	recipe, err := uc.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

func (uc *RecipeUseCase) invalidate(ctx context.Context, companyID string) {
	if err := uc.cache.Invalidate(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché de costos")
	}
}
