package repository

import (
	"context"

	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// UnitRepository tabla global de unidades. Name se guarda tal como se registró.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	List(ctx context.Context) ([]*entity.Unit, error)
	Delete(ctx context.Context, name string) error
}
