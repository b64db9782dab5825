package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/domain/costing"
)

// ConversionHandler calculadoras de merma, rendimiento y precio. Son funciones puras:
// no leen ni escriben estado.
type ConversionHandler struct{}

// NewConversionHandler construye el handler.
func NewConversionHandler() *ConversionHandler { return &ConversionHandler{} }

// NetCost godoc
// @Summary      Costo neto por unidad aprovechable
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NetCostRequest  true  "Precio, factor y merma"
// @Success      200   {object}  dto.NetCostResponse
// @Router       /api/conversions/net-cost [post]
func (h *ConversionHandler) NetCost(c *fiber.Ctx) error {
	var in dto.NetCostRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(dto.NetCostResponse{
		NetCost: costing.CalculateNetCost(in.GrossPrice, in.ConversionFactor, in.WastePercent),
	})
}

// Waste godoc
// @Summary      Merma → rendimiento
// @Description  Entrada libre; texto no numérico equivale a 0% de merma.
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteChangeRequest  true  "Porcentaje de merma"
// @Success      200   {object}  dto.WasteYieldResponse
// @Router       /api/conversions/waste [post]
func (h *ConversionHandler) Waste(c *fiber.Ctx) error {
	var in dto.WasteChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(toWasteYield(costing.HandleWasteChangeInput(in.Value)))
}

// Yield godoc
// @Summary      Rendimiento → merma
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.YieldChangeRequest  true  "Factor de rendimiento"
// @Success      200   {object}  dto.WasteYieldResponse
// @Router       /api/conversions/yield [post]
func (h *ConversionHandler) Yield(c *fiber.Ctx) error {
	var in dto.YieldChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(toWasteYield(costing.HandleYieldChange(in.YieldFactor)))
}

// WasteQuantity godoc
// @Summary      Cantidad perdida
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteQuantityRequest  true  "Merma y total"
// @Success      200   {object}  dto.ValueResponse
// @Router       /api/conversions/waste-quantity [post]
func (h *ConversionHandler) WasteQuantity(c *fiber.Ctx) error {
	var in dto.WasteQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(dto.ValueResponse{Value: costing.GetWasteQuantity(in.WastePercent, in.TotalQuantity)})
}

// WastePercent godoc
// @Summary      Porcentaje de merma medido
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WastePercentRequest  true  "Cantidad perdida y total"
// @Success      200   {object}  dto.ValueResponse
// @Router       /api/conversions/waste-percent [post]
func (h *ConversionHandler) WastePercent(c *fiber.Ctx) error {
	var in dto.WastePercentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(dto.ValueResponse{Value: costing.GetWastePercent(in.WasteQuantity, in.TotalQuantity)})
}

// SuggestedPrice godoc
// @Summary      Precio sugerido de una presentación
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuggestedPriceRequest  true  "Precio base y tasa"
// @Success      200   {object}  dto.ValueResponse
// @Router       /api/conversions/suggested-price [post]
func (h *ConversionHandler) SuggestedPrice(c *fiber.Ctx) error {
	var in dto.SuggestedPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(dto.ValueResponse{Value: costing.GetSuggestedPurchasePrice(in.BasePrice, in.ConversionRate)})
}

func toWasteYield(wy costing.WasteYield) dto.WasteYieldResponse {
	return dto.WasteYieldResponse{WastePercent: wy.WastePercent, YieldFactor: wy.YieldFactor}
}
