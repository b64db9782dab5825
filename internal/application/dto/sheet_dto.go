package dto

import "time"

// RecipeSheet datos de la ficha técnica de costeo de una receta.
type RecipeSheet struct {
	GeneratedAt time.Time
	Cost        RecipeCostResponse
	Scaled      ScaledRecipeResponse
}

// ProductionRecipe receta del evento escalada a sus porciones.
type ProductionRecipe struct {
	Section  string
	Portions int
	Scaled   ScaledRecipeResponse
}

// ProductionSheet hoja de producción de un evento: costeo y recetas escaladas.
type ProductionSheet struct {
	EventDate   time.Time
	GeneratedAt time.Time
	Cost        EventCostResponse
	Recipes     []ProductionRecipe
}
