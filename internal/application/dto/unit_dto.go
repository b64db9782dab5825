package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterUnitRequest alta de unidad: factor multiplicativo hacia gramos.
type RegisterUnitRequest struct {
	Name   string          `json:"name" validate:"required"`
	Factor decimal.Decimal `json:"factor"`
}

// UnitResponse unidad registrada.
type UnitResponse struct {
	Name      string          `json:"name"`
	Factor    decimal.Decimal `json:"factor"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}

// UnitListResponse unidades ordenadas por nombre.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
}
