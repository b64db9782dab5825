package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngredientDTO línea de ingrediente: type "product" o "recipe".
type IngredientDTO struct {
	Type   string          `json:"type"`
	RefID  string          `json:"ref_id"`
	Amount decimal.Decimal `json:"amount"`
	Unit   string          `json:"unit"`
}

// PrepItemDTO ítem de mise en place.
type PrepItemDTO struct {
	Category string          `json:"category,omitempty"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Notes    string          `json:"notes,omitempty"`
}

// MiseCategoryDTO mise en place agrupada por categoría.
type MiseCategoryDTO struct {
	Name  string        `json:"name"`
	Items []PrepItemDTO `json:"items"`
}

// CreateRecipeRequest entrada para crear una receta. La mise en place se acepta en el formato
// heredado (prep_items, lista plana) o en el actual (mise_categories); si llegan ambos manda
// mise_categories.
type CreateRecipeRequest struct {
	Name           string            `json:"name" validate:"required,min=1,max=200"`
	Kind           string            `json:"kind" validate:"required,oneof=preparation dish"`
	YieldAmount    decimal.Decimal   `json:"yield_amount"`
	YieldUnit      string            `json:"yield_unit"`
	Ingredients    []IngredientDTO   `json:"ingredients"`
	PrepItems      []PrepItemDTO     `json:"prep_items"`
	MiseCategories []MiseCategoryDTO `json:"mise_categories"`
	SellingPrice   decimal.Decimal   `json:"selling_price"`
}

// UpdateRecipeRequest actualización parcial; listas nil = sin cambios.
type UpdateRecipeRequest struct {
	Name           *string           `json:"name"`
	Kind           *string           `json:"kind"`
	YieldAmount    *decimal.Decimal  `json:"yield_amount"`
	YieldUnit      *string           `json:"yield_unit"`
	Ingredients    []IngredientDTO   `json:"ingredients"`
	PrepItems      []PrepItemDTO     `json:"prep_items"`
	MiseCategories []MiseCategoryDTO `json:"mise_categories"`
	SellingPrice   *decimal.Decimal  `json:"selling_price"`
}

// RecipeResponse salida de una receta; mise_categories es la vista agrupada de prep_items.
type RecipeResponse struct {
	ID             string            `json:"id"`
	CompanyID      string            `json:"company_id"`
	Name           string            `json:"name"`
	Kind           string            `json:"kind"`
	YieldAmount    decimal.Decimal   `json:"yield_amount"`
	YieldUnit      string            `json:"yield_unit"`
	Ingredients    []IngredientDTO   `json:"ingredients"`
	PrepItems      []PrepItemDTO     `json:"prep_items"`
	MiseCategories []MiseCategoryDTO `json:"mise_categories"`
	SellingPrice   decimal.Decimal   `json:"selling_price"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// RecipeListResponse lista paginada de recetas.
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
