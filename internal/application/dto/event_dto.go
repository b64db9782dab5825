package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemDTO receta elegida en una sección del menú.
// derived_portions es de solo lectura: se ignora en la entrada y se recalcula.
type MenuItemDTO struct {
	RecipeID        string           `json:"recipe_id"`
	TakeRate        decimal.Decimal  `json:"take_rate"`
	PiecesPerPerson *decimal.Decimal `json:"pieces_per_person,omitempty"`
	DerivedPortions int              `json:"derived_portions"`
}

// MenuSectionDTO sección del menú.
type MenuSectionDTO struct {
	Name  string        `json:"name"`
	Items []MenuItemDTO `json:"items"`
}

// CreateEventRequest entrada para crear un evento (también usada por /events/preview).
type CreateEventRequest struct {
	Name            string           `json:"name" validate:"required"`
	EventDate       time.Time        `json:"event_date"`
	GuestCount      int              `json:"guest_count"`
	ServingType     string           `json:"serving_type" validate:"required,oneof=cocktail_passed buffet_family plated_course"`
	RevenuePerGuest decimal.Decimal  `json:"revenue_per_guest"`
	Sections        []MenuSectionDTO `json:"sections"`
}

// UpdateEventRequest actualización parcial; Sections nil = sin cambios.
type UpdateEventRequest struct {
	Name            *string          `json:"name"`
	EventDate       *time.Time       `json:"event_date"`
	GuestCount      *int             `json:"guest_count"`
	ServingType     *string          `json:"serving_type"`
	RevenuePerGuest *decimal.Decimal `json:"revenue_per_guest"`
	Sections        []MenuSectionDTO `json:"sections"`
}

// EventResponse evento con porciones ya derivadas.
type EventResponse struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"company_id"`
	Name            string           `json:"name"`
	EventDate       time.Time        `json:"event_date"`
	GuestCount      int              `json:"guest_count"`
	ServingType     string           `json:"serving_type"`
	RevenuePerGuest decimal.Decimal  `json:"revenue_per_guest"`
	Sections        []MenuSectionDTO `json:"sections"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// EventListResponse lista paginada de eventos.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
