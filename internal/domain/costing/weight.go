package costing

import "github.com/shopspring/decimal"

// WeightRow fila de entrada para el peso agregado (normalmente un ingrediente escalado).
type WeightRow struct {
	Name      string
	NetAmount decimal.Decimal
	Unit      string
}

// WeightResult peso total en gramos y nombres de filas cuya unidad no se pudo convertir.
// Unconvertible es un aviso de calidad de datos, no un error del cálculo.
type WeightResult struct {
	TotalG        decimal.Decimal
	Unconvertible []string
}

// ConvertToBaseUnits convierte amount a gramos; unidad desconocida → amount sin cambios.
func (e *RecipeCostEngine) ConvertToBaseUnits(amount decimal.Decimal, unit string) decimal.Decimal {
	v, ok := e.units.ConvertToBaseUnits(amount, unit)
	if !ok {
		e.log.Debug().Str("unit", unit).Msg("costeo: unidad sin conversión a base, factor 1")
	}
	return v
}

// ComputeTotalWeightG suma el peso en gramos de las filas. Las filas con unidad desconocida
// aportan con factor 1 y se reportan en Unconvertible (sin duplicados, en orden de aparición).
func (e *RecipeCostEngine) ComputeTotalWeightG(rows []WeightRow) WeightResult {
	res := WeightResult{TotalG: decimal.Zero, Unconvertible: []string{}}
	seen := make(map[string]struct{})
	for _, row := range rows {
		v, ok := e.units.ConvertToBaseUnits(row.NetAmount, row.Unit)
		res.TotalG = res.TotalG.Add(v)
		if ok {
			continue
		}
		if _, dup := seen[row.Name]; dup {
			continue
		}
		seen[row.Name] = struct{}{}
		res.Unconvertible = append(res.Unconvertible, row.Name)
	}
	return res
}
