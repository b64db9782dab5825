package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cocina-api/internal/domain/costing"
)

func TestCalculateNetCost(t *testing.T) {
	tests := []struct {
		name       string
		gross      string
		conversion string
		waste      string
		want       string
	}{
		{"sin merma", "100", "10", "0", "10"},
		{"merma 50%", "100", "10", "50", "20"},
		{"precio cero", "0", "10", "10", "0"},
		{"precio negativo", "-5", "10", "10", "0"},
		{"factor cero", "100", "0", "10", "0"},
		{"merma total", "100", "10", "100", "0"},
		{"merma mayor a 100", "100", "10", "120", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDec(t, tt.want, costing.CalculateNetCost(dec(tt.gross), dec(tt.conversion), dec(tt.waste)))
		})
	}
}

// Menos rendimiento efectivo sube el costo por unidad: el costo neto no decrece con la merma.
func TestCalculateNetCost_MonotonoEnMerma(t *testing.T) {
	gross, conv := dec("37.5"), dec("2.4")
	prev := decimal.Zero
	for w := int64(0); w < 100; w++ {
		cost := costing.CalculateNetCost(gross, conv, decimal.NewFromInt(w))
		assert.True(t, cost.GreaterThanOrEqual(prev), "merma %d%%: %s < %s", w, cost, prev)
		prev = cost
	}
}

func TestHandleWasteChange(t *testing.T) {
	wy := costing.HandleWasteChange(dec("12.5"))
	assertDec(t, "12.5", wy.WastePercent)
	assertDec(t, "0.875", wy.YieldFactor)

	wy = costing.HandleWasteChange(dec("33.3333"))
	assertDec(t, "33.33", wy.WastePercent, "el porcentaje se redondea a 2 decimales")
	assertDec(t, "0.6667", wy.YieldFactor)

	wy = costing.HandleWasteChange(dec("150"))
	assertDec(t, "100", wy.WastePercent)
	assertDec(t, "0", wy.YieldFactor)
}

func TestHandleWasteChangeInput_EntradaInvalidaEsSinMerma(t *testing.T) {
	for _, raw := range []string{"", "abc", "12,5%", "  "} {
		wy := costing.HandleWasteChangeInput(raw)
		assertDec(t, "1", wy.YieldFactor, "entrada %q", raw)
		assertDec(t, "0", wy.WastePercent, "entrada %q", raw)
	}
	assertDec(t, "0.9", costing.HandleWasteChangeInput(" 10 ").YieldFactor)
}

func TestHandleYieldChange(t *testing.T) {
	wy := costing.HandleYieldChange(dec("0.85"))
	assertDec(t, "15", wy.WastePercent)

	wy = costing.HandleYieldChange(dec("0.33333"))
	assertDec(t, "66.67", wy.WastePercent)

	wy = costing.HandleYieldChange(dec("1.4"))
	assertDec(t, "1", wy.YieldFactor)
	assertDec(t, "0", wy.WastePercent)
}

// Merma → rendimiento → merma devuelve el porcentaje original (redondeado a 2 decimales).
func TestWasteYield_SonInversas(t *testing.T) {
	step := dec("0.25")
	for p := decimal.Zero; p.LessThanOrEqual(decimal.NewFromInt(100)); p = p.Add(step) {
		back := costing.HandleYieldChange(costing.HandleWasteChange(p).YieldFactor).WastePercent
		assert.True(t, p.Equal(back), "p=%s volvió como %s", p, back)
	}
}

func TestGetWasteQuantityYPercent(t *testing.T) {
	assertDec(t, "20", costing.GetWasteQuantity(dec("10"), dec("200")))
	assertDec(t, "10", costing.GetWastePercent(dec("20"), dec("200")))
	assertDec(t, "33.33", costing.GetWastePercent(dec("1"), dec("3")))
	assertDec(t, "0", costing.GetWastePercent(dec("5"), decimal.Zero), "total cero no divide")
}

func TestGetSuggestedPurchasePrice(t *testing.T) {
	assertDec(t, "5000", costing.GetSuggestedPurchasePrice(dec("5"), dec("1000")))
	assertDec(t, "0", costing.GetSuggestedPurchasePrice(decimal.Zero, dec("1000")))
}
