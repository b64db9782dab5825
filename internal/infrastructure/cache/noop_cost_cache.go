package cache

import (
	"context"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
)

var _ ports.CostCache = NoopCostCache{}

// NoopCostCache se usa cuando no hay REDIS_ADDR: nunca acierta y nunca guarda.
type NoopCostCache struct{}

func (NoopCostCache) GetRecipeCost(context.Context, string, string) (*dto.RecipeCostResponse, string, error) {
	return nil, "", nil
}

func (NoopCostCache) SetRecipeCost(context.Context, string, string, *dto.RecipeCostResponse) error {
	return nil
}

func (NoopCostCache) Invalidate(context.Context, string) error { return nil }
