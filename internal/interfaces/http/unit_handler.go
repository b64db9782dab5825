package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
)

// UnitHandler tabla global de unidades de medida.
type UnitHandler struct {
	uc *usecase.UnitUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(uc *usecase.UnitUseCase) *UnitHandler {
	return &UnitHandler{uc: uc}
}

// List godoc
// @Summary      Listar unidades
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnitListResponse
// @Router       /api/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// Register godoc
// @Summary      Registrar unidad
// @Description  factor = gramos (o equivalente) por unidad. El nombre no distingue mayúsculas.
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUnitRequest  true  "Unidad"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err, "unidad no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar unidad
// @Description  No verifica referencias: productos o recetas que la usen convierten con factor 1.
// @Tags         units
// @Security     Bearer
// @Param        name  path  string  true  "Nombre de la unidad"
// @Success      204
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/units/{name} [delete]
func (h *UnitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("name")); err != nil {
		return writeError(c, err, "unidad no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
