package repository

import (
	"context"

	"github.com/jhoicas/Cocina-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// ListAllByCompany sin paginar; alimenta el catálogo de costeo.
	ListAllByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
