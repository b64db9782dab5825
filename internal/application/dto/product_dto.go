package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOptionDTO presentación de compra de un producto (caja, bolsa, kg...).
type PurchaseOptionDTO struct {
	UnitSymbol     string           `json:"unit_symbol"`
	ConversionRate decimal.Decimal  `json:"conversion_rate"`
	PriceOverride  *decimal.Decimal `json:"price_override,omitempty"`
}

// CreateProductRequest entrada para crear un producto.
// Rendimiento: yield_factor (0–1) o waste_percent (0–100); si llegan ambos manda yield_factor.
// Sin ninguno el rendimiento es 1.
type CreateProductRequest struct {
	Name            string              `json:"name" validate:"required,min=1,max=200"`
	Category        string              `json:"category"`
	BuyPriceGlobal  decimal.Decimal     `json:"buy_price_global"`
	BaseUnit        string              `json:"base_unit"`
	YieldFactor     *decimal.Decimal    `json:"yield_factor"`
	WastePercent    *decimal.Decimal    `json:"waste_percent"`
	PurchaseOptions []PurchaseOptionDTO `json:"purchase_options"`
}

// UpdateProductRequest actualización parcial. PurchaseOptions nil = sin cambios; [] = vaciar.
type UpdateProductRequest struct {
	Name            *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Category        *string             `json:"category"`
	BuyPriceGlobal  *decimal.Decimal    `json:"buy_price_global"`
	BaseUnit        *string             `json:"base_unit"`
	YieldFactor     *decimal.Decimal    `json:"yield_factor"`
	WastePercent    *decimal.Decimal    `json:"waste_percent"`
	PurchaseOptions []PurchaseOptionDTO `json:"purchase_options"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string              `json:"id"`
	CompanyID       string              `json:"company_id"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	BuyPriceGlobal  decimal.Decimal     `json:"buy_price_global"`
	BaseUnit        string              `json:"base_unit"`
	YieldFactor     decimal.Decimal     `json:"yield_factor"`
	WastePercent    decimal.Decimal     `json:"waste_percent"`
	PurchaseOptions []PurchaseOptionDTO `json:"purchase_options"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
