package dto

import "github.com/shopspring/decimal"

// NetCostRequest costo neto por unidad aprovechable.
type NetCostRequest struct {
	GrossPrice       decimal.Decimal `json:"gross_price"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	WastePercent     decimal.Decimal `json:"waste_percent"`
}

// NetCostResponse resultado de NetCostRequest.
type NetCostResponse struct {
	NetCost decimal.Decimal `json:"net_cost"`
}

// WasteChangeRequest valor de merma tal como lo escribió el usuario ("12.5").
type WasteChangeRequest struct {
	Value string `json:"value"`
}

// YieldChangeRequest nuevo factor de rendimiento (0–1).
type YieldChangeRequest struct {
	YieldFactor decimal.Decimal `json:"yield_factor"`
}

// WasteYieldResponse par merma/rendimiento sincronizado.
type WasteYieldResponse struct {
	WastePercent decimal.Decimal `json:"waste_percent"`
	YieldFactor  decimal.Decimal `json:"yield_factor"`
}

// WasteQuantityRequest cantidad perdida sobre un total.
type WasteQuantityRequest struct {
	WastePercent  decimal.Decimal `json:"waste_percent"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// WastePercentRequest porcentaje de merma a partir de cantidades medidas.
type WastePercentRequest struct {
	WasteQuantity decimal.Decimal `json:"waste_quantity"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// SuggestedPriceRequest precio sugerido de una presentación de compra.
type SuggestedPriceRequest struct {
	BasePrice      decimal.Decimal `json:"base_price"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// ValueResponse resultado escalar de una conversión.
type ValueResponse struct {
	Value decimal.Decimal `json:"value"`
}
