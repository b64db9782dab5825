package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cocina-api/internal/application/costing"
	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
)

// EventHandler eventos con menú: CRUD, costeo, vista previa y hoja de producción.
type EventHandler struct {
	uc     *usecase.MenuEventUseCase
	costUC *costing.EventCostingUseCase
	sheets *costing.SheetUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(uc *usecase.MenuEventUseCase, costUC *costing.EventCostingUseCase, sheets *costing.SheetUseCase) *EventHandler {
	return &EventHandler{uc: uc, costUC: costUC, sheets: sheets}
}

// Create godoc
// @Summary      Crear evento
// @Description  derived_portions se calcula en el servidor según estilo de servicio, invitados y take-rate.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "Evento"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err, "evento no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "evento no encontrado")
	}
	if out == nil {
		return notFound(c, "evento no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar eventos
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.EventListResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), companyID, limit, offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del evento"
// @Param        body  body  dto.UpdateEventRequest  true  "Cambios"
// @Success      200   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "evento no encontrado")
	}
	if out == nil {
		return notFound(c, "evento no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evento
// @Tags         events
// @Security     Bearer
// @Param        id   path  string  true  "ID del evento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err, "evento no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cost godoc
// @Summary      Costeo del evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/cost [get]
func (h *EventHandler) Cost(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.costUC.EventCost(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "evento no encontrado")
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Vista previa de costos
// @Description  Costea un evento sin guardarlo; mismo cuerpo que POST /api/events.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "Evento en borrador"
// @Success      200   {object}  dto.EventCostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/events/preview [post]
func (h *EventHandler) Preview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.costUC.Preview(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ProductionSheet godoc
// @Summary      Hoja de producción (PDF)
// @Tags         events
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del evento"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/production-sheet [get]
func (h *EventHandler) ProductionSheet(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	pdf, filename, err := h.sheets.ProductionSheet(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "evento no encontrado")
	}
	return sendPDF(c, pdf, filename)
}
