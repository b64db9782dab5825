package costing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WasteYield par sincronizado merma (%) ↔ factor de rendimiento (0–1).
type WasteYield struct {
	WastePercent decimal.Decimal `json:"waste_percent"`
	YieldFactor  decimal.Decimal `json:"yield_factor"`
}

// CalculateNetCost costo neto por unidad aprovechable.
// yield = 1 - merma/100; cantidadNeta = factorConversion * yield; costo = precioBruto / cantidadNeta.
// Precio o factor no positivos, o cantidad neta no positiva, devuelven 0.
func CalculateNetCost(grossPrice, conversionFactor, wastePercent decimal.Decimal) decimal.Decimal {
	if !grossPrice.IsPositive() || !conversionFactor.IsPositive() {
		return decimal.Zero
	}
	yieldFactor := one.Sub(wastePercent.Div(hundred))
	netQuantity := conversionFactor.Mul(yieldFactor)
	if !netQuantity.IsPositive() {
		return decimal.Zero
	}
	return grossPrice.Div(netQuantity)
}

// HandleWasteChange deriva el factor de rendimiento a partir del porcentaje de merma.
// El porcentaje se redondea a 2 decimales y se limita a [0,100].
func HandleWasteChange(percent decimal.Decimal) WasteYield {
	p := clamp(percent.Round(2), decimal.Zero, hundred)
	return WasteYield{
		WastePercent: p,
		YieldFactor:  one.Sub(p.Div(hundred)),
	}
}

// HandleWasteChangeInput igual que HandleWasteChange pero desde texto de formulario.
// Una entrada no numérica equivale a "sin merma" (rendimiento 1).
func HandleWasteChangeInput(raw string) WasteYield {
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return WasteYield{WastePercent: decimal.Zero, YieldFactor: one}
	}
	return HandleWasteChange(p)
}

// HandleYieldChange deriva el porcentaje de merma a partir del factor de rendimiento.
func HandleYieldChange(yieldFactor decimal.Decimal) WasteYield {
	y := clamp(yieldFactor, decimal.Zero, one)
	return WasteYield{
		WastePercent: one.Sub(y).Mul(hundred).Round(2),
		YieldFactor:  y,
	}
}

// GetWasteQuantity cantidad perdida dado un porcentaje de merma sobre total.
func GetWasteQuantity(percent, total decimal.Decimal) decimal.Decimal {
	return total.Mul(percent).Div(hundred)
}

// GetWastePercent porcentaje de merma de quantity sobre total (0 si total es 0).
func GetWastePercent(quantity, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return quantity.Div(total).Mul(hundred).Round(2)
}

// GetSuggestedPurchasePrice precio sugerido de una presentación de compra.
func GetSuggestedPurchasePrice(basePrice, conversionRate decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(conversionRate)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
