// Package pdf genera las fichas imprimibles de cocina con Maroto v2.
//
// Ficha técnica de costeo (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Receta + rendimiento │ FICHA TÉCNICA + fecha        │
//	│  RESUMEN: costo total / por unidad / precio / food cost      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COSTEO: Ingrediente | Cantidad | Unidad | Costo             │
//	│  ESCALADO: Ingrediente | Base | Escalada | Unidad            │
//	│  MISE EN PLACE por categoría                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: avisos de unidades + QR de la receta                │
//	└─────────────────────────────────────────────────────────────┘
//
// La hoja de producción de un evento repite el bloque de escalado por cada receta del menú.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 128, Green: 38, Blue: 24}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 190, Green: 110, Blue: 0}
)

var _ ports.CostingSheetGenerator = (*MarotoSheetGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSheetGenerator implementa ports.CostingSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct {
	Author string
}

// NewMarotoSheetGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoSheetGenerator(author string) *MarotoSheetGenerator {
	return &MarotoSheetGenerator{Author: author}
}

func (g *MarotoSheetGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.Author, "cocina-api"), true).
		Build()
	return maroto.New(cfg)
}

// GenerateRecipeSheet ficha técnica de costeo de una receta.
func (g *MarotoSheetGenerator) GenerateRecipeSheet(_ context.Context, sheet *dto.RecipeSheet) ([]byte, error) {
	m := g.newDocument("Ficha técnica de costeo")
	cost := sheet.Cost

	m.AddRows(recipeHeaderRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipeSummaryRow(&cost))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("COSTO POR INGREDIENTE"))
	m.AddRows(tableHeaderRow(
		headerCol{"Ingrediente", 6, align.Left},
		headerCol{"Cantidad", 2, align.Right},
		headerCol{"Unidad", 2, align.Center},
		headerCol{"Costo", 2, align.Right},
	))
	m.AddRows(costLineRows(cost.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(scaledBlockRows(&sheet.Scaled, fmt.Sprintf("RECETA ESCALADA A %s %s (x%s)",
		formatQty(sheet.Scaled.TargetQuantity), sheet.Scaled.YieldUnit, formatQty(sheet.Scaled.Factor)))...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(warningRows(cost.Unconvertible)...)
	m.AddRows(qrFooterRow(cost.RecipeID))

	return generate(m)
}

// GenerateProductionSheet hoja de producción de un evento.
func (g *MarotoSheetGenerator) GenerateProductionSheet(_ context.Context, sheet *dto.ProductionSheet) ([]byte, error) {
	m := g.newDocument("Hoja de producción")
	cost := sheet.Cost

	m.AddRows(eventHeaderRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(eventSummaryRow(&cost))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("MENÚ"))
	m.AddRows(tableHeaderRow(
		headerCol{"Sección", 3, align.Left},
		headerCol{"Receta", 4, align.Left},
		headerCol{"Porciones", 2, align.Right},
		headerCol{"Factor", 1, align.Right},
		headerCol{"Costo", 2, align.Right},
	))
	m.AddRows(eventItemRows(cost.Items)...)

	for _, r := range sheet.Recipes {
		r := r
		m.AddRows(line.NewRow(4))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(scaledBlockRows(&r.Scaled, fmt.Sprintf("%s · %s · %d PORCIONES",
			strings.ToUpper(nonEmpty(r.Section, "Sin sección")), r.Scaled.RecipeName, r.Portions))...)
	}

	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones de la ficha de receta ───────────────────────────────────────────

func recipeHeaderRow(sheet *dto.RecipeSheet) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sheet.Cost.RecipeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Rinde %s %s", formatQty(sheet.Cost.YieldAmount), sheet.Cost.YieldUnit), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA TÉCNICA DE COSTEO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generada: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func recipeSummaryRow(cost *dto.RecipeCostResponse) core.Row {
	price, pct := "—", "—"
	if cost.SellingPrice.IsPositive() {
		price = "$" + formatMoney(cost.SellingPrice)
	}
	if cost.FoodCostPct != nil {
		pct = cost.FoodCostPct.StringFixed(1) + "%"
	}
	return row.New(14).Add(
		summaryCol("Costo total", "$"+formatMoney(cost.TotalCost)),
		summaryCol("Costo por "+nonEmpty(cost.YieldUnit, "unidad"), "$"+formatMoney(cost.CostPerUnit)),
		summaryCol("Precio de venta", price),
		summaryCol("Food cost", pct),
		summaryCol("Peso total", formatQty(cost.TotalWeightG)+" g"),
		col.New(2),
	)
}

func costLineRows(lines []dto.IngredientCostDTO) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(6).Add(
			cell(l.DisplayName, 6, align.Left),
			cell(formatQty(l.Amount), 2, align.Right),
			cell(l.Unit, 2, align.Center),
			cell("$"+formatMoney(l.Cost), 2, align.Right),
		))
	}
	return out
}

func qrFooterRow(recipeID string) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr("receta:"+recipeID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Escanee el código para abrir la receta en la aplicación.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New("ID: "+recipeID, props.Text{Size: 7, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}

// ── Secciones de la hoja de producción ────────────────────────────────────────

func eventHeaderRow(sheet *dto.ProductionSheet) core.Row {
	date := "Sin fecha"
	if !sheet.EventDate.IsZero() {
		date = sheet.EventDate.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sheet.Cost.EventName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d invitados · %s", sheet.Cost.GuestCount, servingLabel(sheet.Cost.ServingType)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Evento: "+date, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
			text.New("Generada: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func eventSummaryRow(cost *dto.EventCostResponse) core.Row {
	return row.New(14).Add(
		summaryCol("Costo ingredientes", "$"+formatMoney(cost.IngredientCost)),
		summaryCol("Costo por invitado", "$"+formatMoney(cost.CostPerGuest)),
		summaryCol("Ingreso", "$"+formatMoney(cost.Revenue)),
		summaryCol("Food cost", cost.FoodCostPct.StringFixed(1)+"%"),
		col.New(4),
	)
}

func eventItemRows(items []dto.EventItemCostDTO) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.RecipeName
		if !it.Found {
			name = "(receta no encontrada)"
		}
		out = append(out, row.New(6).Add(
			cell(it.Section, 3, align.Left),
			cell(name, 4, align.Left),
			cell(fmt.Sprintf("%d", it.Portions), 2, align.Right),
			cell(formatQty(it.Factor), 1, align.Right),
			cell("$"+formatMoney(it.Cost), 2, align.Right),
		))
	}
	return out
}

// ── Bloques compartidos ───────────────────────────────────────────────────────

// scaledBlockRows ingredientes escalados y mise en place agrupada.
func scaledBlockRows(s *dto.ScaledRecipeResponse, title string) []core.Row {
	rows := []core.Row{
		sectionTitleRow(title),
		tableHeaderRow(
			headerCol{"Ingrediente", 6, align.Left},
			headerCol{"Base", 2, align.Right},
			headerCol{"Escalada", 2, align.Right},
			headerCol{"Unidad", 2, align.Center},
		),
	}
	for _, ing := range s.Ingredients {
		rows = append(rows, row.New(6).Add(
			cell(ing.DisplayName, 6, align.Left),
			cell(formatQty(ing.Amount), 2, align.Right),
			boldCell(formatQty(ing.ScaledAmount), 2),
			cell(ing.Unit, 2, align.Center),
		))
	}
	rows = append(rows, row.New(6).Add(
		col.New(6),
		col.New(6).Add(text.New(fmt.Sprintf("Peso total: %s g   |   Costo: $%s",
			formatQty(s.TotalWeightG), formatMoney(s.ScaledCost)), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
		})),
	))

	if len(s.PrepItems) == 0 {
		return rows
	}
	rows = append(rows, sectionTitleRow("MISE EN PLACE"))
	category := ""
	for i, p := range s.PrepItems {
		if i == 0 || p.Category != category {
			category = p.Category
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(nonEmpty(category, "General"), props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorPrimary,
				}),
			)))
		}
		rows = append(rows, row.New(5).Add(
			cell("• "+p.Name, 6, align.Left),
			cell(formatQty(p.ScaledQuantity)+" "+p.Unit, 3, align.Right),
			cell(p.Notes, 3, align.Left),
		))
	}
	return rows
}

// warningRows unidades sin conversión a gramos; el peso total las cuenta con factor 1.
func warningRows(unconvertible []string) []core.Row {
	if len(unconvertible) == 0 {
		return nil
	}
	return []core.Row{row.New(8).Add(col.New(12).Add(
		text.New("Sin conversión a gramos (peso aproximado): "+strings.Join(unconvertible, ", "), props.Text{
			Size: 7, Top: 2, Color: colorWarn,
		}),
	))}
}

type headerCol struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols ...headerCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, h := range cols {
		out = append(out, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func summaryCol(label, value string) core.Col {
	return col.New(2).Add(
		text.New(label, props.Text{Size: 7, Top: 1, Color: colorGray}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	)
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func boldCell(value string, size int) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
	}))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func servingLabel(s string) string {
	switch s {
	case "cocktail_passed":
		return "cóctel pasado"
	case "buffet_family":
		return "buffet / familiar"
	case "plated_course":
		return "emplatado"
	}
	return s
}

// formatMoney dos decimales, puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", -1234.5 → "-1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "," + frac
}

// formatQty cantidades con hasta 3 decimales, sin ceros sobrantes.
func formatQty(d decimal.Decimal) string {
	return d.Round(3).String()
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
