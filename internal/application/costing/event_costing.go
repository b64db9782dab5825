package costing

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
	"github.com/jhoicas/Cocina-api/internal/application/usecase"
	"github.com/jhoicas/Cocina-api/internal/domain"
	costingdom "github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/menu"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

// EventCostingUseCase costeo de eventos guardados o en borrador.
type EventCostingUseCase struct {
	loader catalogLoader
	events repository.MenuEventRepository
	log    zerolog.Logger
}

// NewEventCostingUseCase construye el caso de uso.
func NewEventCostingUseCase(
	catalog ports.CatalogTxRunner,
	events repository.MenuEventRepository,
	units *costingdom.UnitRegistry,
	log zerolog.Logger,
) *EventCostingUseCase {
	return &EventCostingUseCase{
		loader: catalogLoader{tx: catalog, units: units, log: log},
		events: events,
		log:    log,
	}
}

func (uc *EventCostingUseCase) findEvent(ctx context.Context, companyID, eventID string) (*entity.MenuEvent, error) {
	event, err := uc.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	// Los eventos guardados ya traen porciones; se re-hidratan por si cambió la regla.
	menu.HydrateDerivedPortions(event)
	return event, nil
}

// EventCost costeo de un evento guardado.
func (uc *EventCostingUseCase) EventCost(ctx context.Context, companyID, eventID string) (*dto.EventCostResponse, error) {
	event, err := uc.findEvent(ctx, companyID, eventID)
	if err != nil {
		return nil, err
	}
	snap, err := uc.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return uc.report(snap, event), nil
}

// Preview costeo de un evento sin guardarlo.
func (uc *EventCostingUseCase) Preview(ctx context.Context, companyID string, in dto.CreateEventRequest) (*dto.EventCostResponse, error) {
	event, err := usecase.EventFromRequest(companyID, in)
	if err != nil {
		return nil, err
	}
	snap, err := uc.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return uc.report(snap, event), nil
}

// ProductionSheet datos de la hoja de producción: costeo y cada receta escalada a sus porciones.
func (uc *EventCostingUseCase) ProductionSheet(ctx context.Context, companyID, eventID string) (*dto.ProductionSheet, error) {
	event, err := uc.findEvent(ctx, companyID, eventID)
	if err != nil {
		return nil, err
	}
	snap, err := uc.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	cost := uc.report(snap, event)
	sheet := &dto.ProductionSheet{EventDate: event.EventDate, Cost: *cost, Recipes: make([]dto.ProductionRecipe, 0)}
	for _, item := range cost.Items {
		if !item.Found {
			continue
		}
		recipe, _ := snap.catalog.FindRecipeByID(item.RecipeID)
		sheet.Recipes = append(sheet.Recipes, dto.ProductionRecipe{
			Section:  item.Section,
			Portions: item.Portions,
			Scaled:   *snap.scaled(recipe, item.Factor, decimal.NewFromInt(int64(item.Portions))),
		})
	}
	return sheet, nil
}

func (uc *EventCostingUseCase) report(snap *snapshot, event *entity.MenuEvent) *dto.EventCostResponse {
	report := menu.NewEngine(snap.catalog, snap.units, uc.log).ComputeEventCostReport(event)

	items := make([]dto.EventItemCostDTO, 0, len(report.Items))
	for _, it := range report.Items {
		items = append(items, dto.EventItemCostDTO{
			Section:    it.Section,
			RecipeID:   it.RecipeID,
			RecipeName: it.RecipeName,
			Found:      it.Found,
			Portions:   it.Portions,
			Factor:     it.Factor,
			Cost:       it.Cost,
		})
	}
	perGuest := decimal.Zero
	if event.GuestCount > 0 {
		perGuest = report.IngredientCost.Div(decimal.NewFromInt(int64(event.GuestCount)))
	}
	return &dto.EventCostResponse{
		EventID:        event.ID,
		EventName:      event.Name,
		GuestCount:     event.GuestCount,
		ServingType:    string(event.ServingType),
		Items:          items,
		IngredientCost: report.IngredientCost,
		CostPerGuest:   perGuest,
		Revenue:        report.Revenue,
		FoodCostPct:    report.FoodCostPct,
	}
}
