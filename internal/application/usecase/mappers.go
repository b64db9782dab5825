package usecase

import (
	"strings"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/menu"
	"github.com/jhoicas/Cocina-api/internal/domain/scaling"
)

// ── productos ─────────────────────────────────────────────────────────────────

func toPurchaseOptions(in []dto.PurchaseOptionDTO) ([]entity.PurchaseOption, error) {
	out := make([]entity.PurchaseOption, 0, len(in))
	for _, o := range in {
		symbol := strings.TrimSpace(o.UnitSymbol)
		if symbol == "" || o.ConversionRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if o.PriceOverride != nil && o.PriceOverride.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		out = append(out, entity.PurchaseOption{
			UnitSymbol:     symbol,
			ConversionRate: o.ConversionRate,
			PriceOverride:  o.PriceOverride,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	opts := make([]dto.PurchaseOptionDTO, 0, len(p.PurchaseOptions))
	for _, o := range p.PurchaseOptions {
		opts = append(opts, dto.PurchaseOptionDTO{
			UnitSymbol:     o.UnitSymbol,
			ConversionRate: o.ConversionRate,
			PriceOverride:  o.PriceOverride,
		})
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		Name:            p.Name,
		Category:        p.Category,
		BuyPriceGlobal:  p.BuyPriceGlobal,
		BaseUnit:        p.BaseUnit,
		YieldFactor:     p.YieldFactor,
		WastePercent:    costing.HandleYieldChange(p.YieldFactor).WastePercent,
		PurchaseOptions: opts,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ── recetas ───────────────────────────────────────────────────────────────────

func toIngredients(in []dto.IngredientDTO) ([]entity.Ingredient, error) {
	out := make([]entity.Ingredient, 0, len(in))
	for _, i := range in {
		t := entity.IngredientType(strings.TrimSpace(i.Type))
		if !entity.IsValidIngredientType(t) || strings.TrimSpace(i.RefID) == "" || i.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		out = append(out, entity.Ingredient{
			Type:   t,
			RefID:  strings.TrimSpace(i.RefID),
			Amount: i.Amount,
			Unit:   strings.TrimSpace(i.Unit),
		})
	}
	return out, nil
}

func toPrepItem(p dto.PrepItemDTO) entity.PrepItem {
	return entity.PrepItem{Category: p.Category, Name: p.Name, Quantity: p.Quantity, Unit: p.Unit, Notes: p.Notes}
}

// toPrepItems normaliza los dos formatos de entrada de mise en place a la lista canónica.
func toPrepItems(flat []dto.PrepItemDTO, grouped []dto.MiseCategoryDTO) []entity.PrepItem {
	flatItems := make([]entity.PrepItem, 0, len(flat))
	for _, p := range flat {
		flatItems = append(flatItems, toPrepItem(p))
	}
	groups := make([]entity.MiseCategory, 0, len(grouped))
	for _, g := range grouped {
		cat := entity.MiseCategory{Name: g.Name}
		for _, p := range g.Items {
			cat.Items = append(cat.Items, toPrepItem(p))
		}
		groups = append(groups, cat)
	}
	return scaling.NormalizePrepItems(flatItems, groups)
}

func fromPrepItem(p entity.PrepItem) dto.PrepItemDTO {
	return dto.PrepItemDTO{Category: p.Category, Name: p.Name, Quantity: p.Quantity, Unit: p.Unit, Notes: p.Notes}
}

// ToMiseCategoriesDTO vista agrupada de la mise en place.
func ToMiseCategoriesDTO(items []entity.PrepItem) []dto.MiseCategoryDTO {
	groups := scaling.GroupPrepItems(items)
	out := make([]dto.MiseCategoryDTO, 0, len(groups))
	for _, g := range groups {
		cat := dto.MiseCategoryDTO{Name: g.Name, Items: make([]dto.PrepItemDTO, 0, len(g.Items))}
		for _, p := range g.Items {
			cat.Items = append(cat.Items, fromPrepItem(p))
		}
		out = append(out, cat)
	}
	return out
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	ings := make([]dto.IngredientDTO, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ings = append(ings, dto.IngredientDTO{Type: string(i.Type), RefID: i.RefID, Amount: i.Amount, Unit: i.Unit})
	}
	prep := make([]dto.PrepItemDTO, 0, len(r.PrepItems))
	for _, p := range r.PrepItems {
		prep = append(prep, fromPrepItem(p))
	}
	return &dto.RecipeResponse{
		ID:             r.ID,
		CompanyID:      r.CompanyID,
		Name:           r.Name,
		Kind:           string(r.Kind),
		YieldAmount:    r.YieldAmount,
		YieldUnit:      r.YieldUnit,
		Ingredients:    ings,
		PrepItems:      prep,
		MiseCategories: ToMiseCategoriesDTO(r.PrepItems),
		SellingPrice:   r.SellingPrice,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ── eventos ───────────────────────────────────────────────────────────────────

func toSections(in []dto.MenuSectionDTO) ([]entity.MenuSection, error) {
	out := make([]entity.MenuSection, 0, len(in))
	for _, s := range in {
		sec := entity.MenuSection{Name: strings.TrimSpace(s.Name), Items: make([]entity.MenuItemSelection, 0, len(s.Items))}
		for _, it := range s.Items {
			if strings.TrimSpace(it.RecipeID) == "" {
				return nil, domain.ErrInvalidInput
			}
			sec.Items = append(sec.Items, entity.MenuItemSelection{
				RecipeID:        strings.TrimSpace(it.RecipeID),
				TakeRate:        it.TakeRate,
				PiecesPerPerson: it.PiecesPerPerson,
			})
		}
		out = append(out, sec)
	}
	return out, nil
}

// EventFromRequest arma un evento (sin persistir) con las porciones ya derivadas.
// Lo comparten el alta de eventos y la vista previa de costos.
func EventFromRequest(companyID string, in dto.CreateEventRequest) (*entity.MenuEvent, error) {
	serving := entity.ServingType(strings.TrimSpace(in.ServingType))
	if strings.TrimSpace(in.Name) == "" || !entity.IsValidServingType(serving) || in.GuestCount < 0 {
		return nil, domain.ErrInvalidInput
	}
	sections, err := toSections(in.Sections)
	if err != nil {
		return nil, err
	}
	event := &entity.MenuEvent{
		CompanyID:       companyID,
		Name:            strings.TrimSpace(in.Name),
		EventDate:       in.EventDate,
		GuestCount:      in.GuestCount,
		ServingType:     serving,
		RevenuePerGuest: in.RevenuePerGuest,
		Sections:        sections,
	}
	menu.HydrateDerivedPortions(event)
	return event, nil
}

// ToEventResponse salida de un evento.
func ToEventResponse(e *entity.MenuEvent) *dto.EventResponse {
	sections := make([]dto.MenuSectionDTO, 0, len(e.Sections))
	for _, s := range e.Sections {
		sec := dto.MenuSectionDTO{Name: s.Name, Items: make([]dto.MenuItemDTO, 0, len(s.Items))}
		for _, it := range s.Items {
			sec.Items = append(sec.Items, dto.MenuItemDTO{
				RecipeID:        it.RecipeID,
				TakeRate:        it.TakeRate,
				PiecesPerPerson: it.PiecesPerPerson,
				DerivedPortions: it.DerivedPortions,
			})
		}
		sections = append(sections, sec)
	}
	return &dto.EventResponse{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		Name:            e.Name,
		EventDate:       e.EventDate,
		GuestCount:      e.GuestCount,
		ServingType:     string(e.ServingType),
		RevenuePerGuest: e.RevenuePerGuest,
		Sections:        sections,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
