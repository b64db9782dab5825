package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/menu"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

// MenuEventUseCase CRUD de eventos. Las porciones derivadas se recalculan en cada alta o
// modificación antes de persistir.
type MenuEventUseCase struct {
	repo repository.MenuEventRepository
}

// NewMenuEventUseCase construye el caso de uso.
func NewMenuEventUseCase(repo repository.MenuEventRepository) *MenuEventUseCase {
	return &MenuEventUseCase{repo: repo}
}

// Create crea el evento con porciones hidratadas.
func (uc *MenuEventUseCase) Create(ctx context.Context, companyID string, in dto.CreateEventRequest) (*dto.EventResponse, error) {
	event, err := EventFromRequest(companyID, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	event.ID = uuid.New().String()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := uc.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return ToEventResponse(event), nil
}

// Find evento de la empresa; nil, nil si no existe o es de otra empresa.
func (uc *MenuEventUseCase) Find(ctx context.Context, companyID, id string) (*entity.MenuEvent, error) {
	event, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil || event.CompanyID != companyID {
		return nil, nil
	}
	return event, nil
}

// GetByID nil, nil si no existe.
func (uc *MenuEventUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.EventResponse, error) {
	event, err := uc.Find(ctx, companyID, id)
	if err != nil || event == nil {
		return nil, err
	}
	return ToEventResponse(event), nil
}

// Update actualización parcial; siempre re-hidrata porciones.
func (uc *MenuEventUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := uc.Find(ctx, companyID, id)
	if err != nil || event == nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		event.Name = name
	}
	if in.EventDate != nil {
		event.EventDate = *in.EventDate
	}
	if in.GuestCount != nil {
		if *in.GuestCount < 0 {
			return nil, domain.ErrInvalidInput
		}
		event.GuestCount = *in.GuestCount
	}
	if in.ServingType != nil {
		st := entity.ServingType(strings.TrimSpace(*in.ServingType))
		if !entity.IsValidServingType(st) {
			return nil, domain.ErrInvalidInput
		}
		event.ServingType = st
	}
	if in.RevenuePerGuest != nil {
		event.RevenuePerGuest = *in.RevenuePerGuest
	}
	if in.Sections != nil {
		sections, err := toSections(in.Sections)
		if err != nil {
			return nil, err
		}
		event.Sections = sections
	}
	menu.HydrateDerivedPortions(event)
	event.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return ToEventResponse(event), nil
}

// List eventos de la empresa.
func (uc *MenuEventUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.EventListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EventResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *ToEventResponse(e))
	}
	return &dto.EventListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina el evento.
func (uc *MenuEventUseCase) Delete(ctx context.Context, companyID, id string) error {
	event, err := uc.Find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
