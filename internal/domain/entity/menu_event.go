package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServingType estilo de servicio del evento; determina cómo se derivan las porciones.
type ServingType string

const (
	ServingCocktailPassed ServingType = "cocktail_passed"
	ServingBuffetFamily   ServingType = "buffet_family"
	ServingPlatedCourse   ServingType = "plated_course"
)

// MenuEvent evento con menú (boda, catering, cena). DerivedPortions de cada ítem es un valor
// calculado: se recalcula con HydrateDerivedPortions cada vez que cambian invitados,
// take-rate, estilo de servicio o piezas por persona.
type MenuEvent struct {
	ID              string
	CompanyID       string
	Name            string
	EventDate       time.Time
	GuestCount      int
	ServingType     ServingType
	RevenuePerGuest decimal.Decimal
	Sections        []MenuSection
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MenuSection sección del menú (entradas, fuertes, postres...).
type MenuSection struct {
	Name  string              `json:"name"`
	Items []MenuItemSelection `json:"items"`
}

// MenuItemSelection receta elegida para el evento con su take-rate esperado.
type MenuItemSelection struct {
	RecipeID        string           `json:"recipe_id"`
	TakeRate        decimal.Decimal  `json:"take_rate"`
	PiecesPerPerson *decimal.Decimal `json:"pieces_per_person,omitempty"`
	DerivedPortions int              `json:"derived_portions"`
}

// IsValidServingType valida el estilo de servicio.
func IsValidServingType(s ServingType) bool {
	switch s {
	case ServingCocktailPassed, ServingBuffetFamily, ServingPlatedCourse:
		return true
	}
	return false
}
