package repository

import (
	"context"

	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// MenuEventRepository persistencia de eventos; las secciones se guardan con porciones ya hidratadas.
type MenuEventRepository interface {
	Create(ctx context.Context, event *entity.MenuEvent) error
	GetByID(ctx context.Context, id string) (*entity.MenuEvent, error)
	Update(ctx context.Context, event *entity.MenuEvent) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.MenuEvent, error)
	Delete(ctx context.Context, id string) error
}
