package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/costing"
	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
)

// RecipeHandler recetas: CRUD, costeo, escalado y ficha técnica.
type RecipeHandler struct {
	uc     *usecase.RecipeUseCase
	costUC *costing.RecipeCostingUseCase
	sheets *costing.SheetUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *usecase.RecipeUseCase, costUC *costing.RecipeCostingUseCase, sheets *costing.SheetUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc, costUC: costUC, sheets: sheets}
}

// Create godoc
// @Summary      Crear receta
// @Description  La mise en place se acepta como lista plana (prep_items) o agrupada (mise_categories).
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Receta"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err, "receta no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener receta
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "receta no encontrada")
	}
	if out == nil {
		return notFound(c, "receta no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recetas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  false  "preparation | dish"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.RecipeListResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), companyID, c.Query("kind"), limit, offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "Cambios"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "receta no encontrada")
	}
	if out == nil {
		return notFound(c, "receta no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar receta
// @Tags         recipes
// @Security     Bearer
// @Param        id   path  string  true  "ID de la receta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err, "receta no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cost godoc
// @Summary      Costeo de la receta
// @Description  Costo total, por unidad de rendimiento, peso y costo por línea. Food cost % solo para platos con precio de venta.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/cost [get]
func (h *RecipeHandler) Cost(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.costUC.RecipeCost(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "receta no encontrada")
	}
	return c.JSON(out)
}

// Scale godoc
// @Summary      Escalar receta
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la receta"
// @Param        target  query  string  false  "Cantidad objetivo en la unidad de rendimiento"
// @Success      200     {object}  dto.ScaledRecipeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/scale [get]
func (h *RecipeHandler) Scale(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	target, ok := targetQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "target debe ser numérico"})
	}
	out, err := h.costUC.Scale(c.Context(), companyID, c.Params("id"), target)
	if err != nil {
		return writeError(c, err, "receta no encontrada")
	}
	return c.JSON(out)
}

// CostingSheet godoc
// @Summary      Ficha técnica de costeo (PDF)
// @Tags         recipes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id      path   string  true   "ID de la receta"
// @Param        target  query  string  false  "Cantidad objetivo para el bloque escalado"
// @Success      200
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/costing-sheet [get]
func (h *RecipeHandler) CostingSheet(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	target, ok := targetQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "target debe ser numérico"})
	}
	pdf, filename, err := h.sheets.RecipeSheet(c.Context(), companyID, c.Params("id"), target)
	if err != nil {
		return writeError(c, err, "receta no encontrada")
	}
	return sendPDF(c, pdf, filename)
}

// targetQuery ?target= opcional; ausente → nil.
func targetQuery(c *fiber.Ctx) (*decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query("target"))
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
