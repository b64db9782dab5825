package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo comprable (materia prima) del inventario de cocina.
// BuyPriceGlobal es el precio de compra de referencia expresado en BaseUnit.
// YieldFactor es la fracción aprovechable tras merma, en (0,1].
type Product struct {
	ID              string
	CompanyID       string
	Name            string
	Category        string
	BuyPriceGlobal  decimal.Decimal
	BaseUnit        string
	YieldFactor     decimal.Decimal
	PurchaseOptions []PurchaseOption
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PurchaseOption presentación alternativa de compra (caja, bolsa, kilo...).
// ConversionRate son unidades de compra por unidad base; PriceOverride, si existe,
// reemplaza el cálculo por precio global.
type PurchaseOption struct {
	UnitSymbol     string           `json:"unit_symbol"`
	ConversionRate decimal.Decimal  `json:"conversion_rate"`
	PriceOverride  *decimal.Decimal `json:"price_override,omitempty"`
}

// HasPriceOverride indica si la opción trae precio propio.
func (o PurchaseOption) HasPriceOverride() bool {
	return o.PriceOverride != nil
}
