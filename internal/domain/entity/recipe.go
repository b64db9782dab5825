package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeKind distingue preparaciones intermedias de platos finales.
type RecipeKind string

const (
	RecipeKindPreparation RecipeKind = "preparation"
	RecipeKindDish        RecipeKind = "dish"
)

// IngredientType discrimina a qué apunta un ingrediente.
type IngredientType string

const (
	IngredientTypeProduct IngredientType = "product"
	IngredientTypeRecipe  IngredientType = "recipe"
)

// Recipe es una preparación (con rendimiento YieldAmount en YieldUnit) o un plato porcionado.
// PrepItems es la lista canónica de mise en place: plana, con la categoría en cada ítem.
type Recipe struct {
	ID           string
	CompanyID    string
	Name         string
	Kind         RecipeKind
	YieldAmount  decimal.Decimal
	YieldUnit    string
	Ingredients  []Ingredient
	PrepItems    []PrepItem
	SellingPrice decimal.Decimal // solo platos; cero si no aplica
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ingredient arista del grafo de costeo: apunta a un Product o a otra Recipe.
// Amount y Unit son locales a la receta que lo referencia.
type Ingredient struct {
	Type   IngredientType  `json:"type"`
	RefID  string          `json:"ref_id"`
	Amount decimal.Decimal `json:"amount"`
	Unit   string          `json:"unit"`
}

// PrepItem ítem de mise en place.
type PrepItem struct {
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Notes    string          `json:"notes,omitempty"`
}

// MiseCategory vista agrupada de los PrepItems (formato actual de entrada y de visualización).
type MiseCategory struct {
	Name  string     `json:"name"`
	Items []PrepItem `json:"items"`
}

// IsValidIngredientType valida el discriminador.
func IsValidIngredientType(t IngredientType) bool {
	return t == IngredientTypeProduct || t == IngredientTypeRecipe
}
