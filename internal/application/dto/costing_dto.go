package dto

import "github.com/shopspring/decimal"

// IngredientCostDTO costo de una línea de ingrediente de primer nivel.
type IngredientCostDTO struct {
	Type        string          `json:"type"`
	RefID       string          `json:"ref_id"`
	DisplayName string          `json:"display_name"`
	Amount      decimal.Decimal `json:"amount"`
	Unit        string          `json:"unit"`
	Cost        decimal.Decimal `json:"cost"`
}

// RecipeCostResponse costeo completo de una receta. Es lo que se cachea.
type RecipeCostResponse struct {
	RecipeID      string              `json:"recipe_id"`
	RecipeName    string              `json:"recipe_name"`
	YieldAmount   decimal.Decimal     `json:"yield_amount"`
	YieldUnit     string              `json:"yield_unit"`
	TotalCost     decimal.Decimal     `json:"total_cost"`
	CostPerUnit   decimal.Decimal     `json:"cost_per_unit"`
	TotalWeightG  decimal.Decimal     `json:"total_weight_g"`
	Unconvertible []string            `json:"unconvertible_units"`
	Lines         []IngredientCostDTO `json:"lines"`
	SellingPrice  decimal.Decimal     `json:"selling_price"`
	// FoodCostPct solo para platos con precio de venta: costo por porción / precio * 100.
	FoodCostPct *decimal.Decimal `json:"food_cost_pct,omitempty"`
}

// ScaledIngredientDTO fila de ingrediente escalado.
type ScaledIngredientDTO struct {
	Type           string          `json:"type"`
	RefID          string          `json:"ref_id"`
	DisplayName    string          `json:"display_name"`
	Found          bool            `json:"found"`
	Amount         decimal.Decimal `json:"amount"`
	ScaledAmount   decimal.Decimal `json:"scaled_amount"`
	Unit           string          `json:"unit"`
	AvailableUnits []string        `json:"available_units"`
}

// ScaledPrepItemDTO ítem de mise en place escalado.
type ScaledPrepItemDTO struct {
	Category       string          `json:"category"`
	Name           string          `json:"name"`
	Quantity       decimal.Decimal `json:"quantity"`
	ScaledQuantity decimal.Decimal `json:"scaled_quantity"`
	Unit           string          `json:"unit"`
	Notes          string          `json:"notes,omitempty"`
}

// ScaledRecipeResponse receta escalada a una cantidad objetivo.
type ScaledRecipeResponse struct {
	RecipeID       string                `json:"recipe_id"`
	RecipeName     string                `json:"recipe_name"`
	TargetQuantity decimal.Decimal       `json:"target_quantity"`
	YieldUnit      string                `json:"yield_unit"`
	Factor         decimal.Decimal       `json:"factor"`
	Ingredients    []ScaledIngredientDTO `json:"ingredients"`
	PrepItems      []ScaledPrepItemDTO   `json:"prep_items"`
	MiseCategories []MiseCategoryDTO     `json:"mise_categories"`
	TotalWeightG   decimal.Decimal       `json:"total_weight_g"`
	Unconvertible  []string              `json:"unconvertible_units"`
	ScaledCost     decimal.Decimal       `json:"scaled_cost"`
}

// EventItemCostDTO costo de un ítem del menú escalado a sus porciones.
type EventItemCostDTO struct {
	Section    string          `json:"section"`
	RecipeID   string          `json:"recipe_id"`
	RecipeName string          `json:"recipe_name"`
	Found      bool            `json:"found"`
	Portions   int             `json:"portions"`
	Factor     decimal.Decimal `json:"factor"`
	Cost       decimal.Decimal `json:"cost"`
}

// EventCostResponse costeo de un evento.
type EventCostResponse struct {
	EventID        string             `json:"event_id,omitempty"`
	EventName      string             `json:"event_name"`
	GuestCount     int                `json:"guest_count"`
	ServingType    string             `json:"serving_type"`
	Items          []EventItemCostDTO `json:"items"`
	IngredientCost decimal.Decimal    `json:"ingredient_cost"`
	CostPerGuest   decimal.Decimal    `json:"cost_per_guest"`
	Revenue        decimal.Decimal    `json:"revenue"`
	FoodCostPct    decimal.Decimal    `json:"food_cost_pct"`
}
