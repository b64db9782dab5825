package scaling

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// PrepRow ítem de mise en place escalado.
type PrepRow struct {
	Category       string
	Name           string
	Quantity       decimal.Decimal
	ScaledQuantity decimal.Decimal
	Unit           string
	Notes          string
}

// NormalizePrepItems unifica las dos formas de entrada en la lista canónica plana:
// la lista heredada prep_items y la agrupada mise_categories. Si llegan categorías,
// mandan ellas y cada ítem recibe el nombre de su categoría.
func NormalizePrepItems(flat []entity.PrepItem, grouped []entity.MiseCategory) []entity.PrepItem {
	if len(grouped) > 0 {
		out := make([]entity.PrepItem, 0)
		for _, cat := range grouped {
			name := strings.TrimSpace(cat.Name)
			for _, it := range cat.Items {
				it.Category = name
				out = append(out, it)
			}
		}
		return out
	}
	out := make([]entity.PrepItem, 0, len(flat))
	for _, it := range flat {
		it.Category = strings.TrimSpace(it.Category)
		out = append(out, it)
	}
	return out
}

// GroupPrepItems vista agrupada por categoría, en el orden en que aparece cada categoría.
func GroupPrepItems(items []entity.PrepItem) []entity.MiseCategory {
	groups := make([]entity.MiseCategory, 0)
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, entity.MiseCategory{Name: it.Category})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// GetScaledPrepItems filas de mise en place con la cantidad multiplicada por factor.
func GetScaledPrepItems(recipe *entity.Recipe, factor decimal.Decimal) []PrepRow {
	if recipe == nil {
		return []PrepRow{}
	}
	rows := make([]PrepRow, 0, len(recipe.PrepItems))
	for _, it := range recipe.PrepItems {
		rows = append(rows, PrepRow{
			Category:       it.Category,
			Name:           it.Name,
			Quantity:       it.Quantity,
			ScaledQuantity: it.Quantity.Mul(factor),
			Unit:           it.Unit,
			Notes:          it.Notes,
		})
	}
	return rows
}
