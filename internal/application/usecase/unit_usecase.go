package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

// UnitUseCase mantiene sincronizados el registro en memoria y la tabla units.
// El registro es la fuente de verdad para los cálculos; la BD lo persiste entre reinicios.
type UnitUseCase struct {
	registry *costing.UnitRegistry
	repo     repository.UnitRepository
	cache    ports.CostCache
	log      zerolog.Logger
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(registry *costing.UnitRegistry, repo repository.UnitRepository, cache ports.CostCache, log zerolog.Logger) *UnitUseCase {
	return &UnitUseCase{registry: registry, repo: repo, cache: cache, log: log}
}

// Load carga el registro desde la BD. Con la tabla vacía se usan las unidades por defecto.
func (uc *UnitUseCase) Load(ctx context.Context) error {
	rows, err := uc.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("cargar unidades: %w", err)
	}
	if len(rows) == 0 {
		uc.log.Warn().Msg("tabla units vacía, se usan las unidades por defecto")
		uc.registry.Replace(costing.DefaultUnits())
		return nil
	}
	units := make([]entity.Unit, 0, len(rows))
	for _, u := range rows {
		units = append(units, *u)
	}
	uc.registry.Replace(units)
	uc.log.Info().Int("units", len(units)).Msg("registro de unidades cargado")
	return nil
}

// List unidades ordenadas por nombre.
func (uc *UnitUseCase) List() *dto.UnitListResponse {
	units := uc.registry.Units()
	items := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		items = append(items, dto.UnitResponse{Name: u.Name, Factor: u.Factor, CreatedAt: u.CreatedAt})
	}
	return &dto.UnitListResponse{Items: items}
}

// Register agrega una unidad. Primero se reserva en el registro (detecta duplicados sin
// distinguir mayúsculas) y luego se persiste; si la BD falla se deshace el alta en memoria.
func (uc *UnitUseCase) Register(ctx context.Context, in dto.RegisterUnitRequest) (*dto.UnitResponse, error) {
	unit, err := uc.registry.RegisterUnit(in.Name, in.Factor)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, &unit); err != nil {
		uc.registry.DeleteUnit(unit.Name)
		return nil, err
	}
	uc.invalidateAll(ctx)
	uc.log.Info().Str("unit", unit.Name).Str("factor", unit.Factor.String()).Msg("unidad registrada")
	return &dto.UnitResponse{Name: unit.Name, Factor: unit.Factor, CreatedAt: unit.CreatedAt}, nil
}

// Delete elimina la unidad sin verificar referencias: productos o ingredientes que la
// usen pasan a convertir con factor 1.
func (uc *UnitUseCase) Delete(ctx context.Context, name string) error {
	unit, ok := uc.registry.Take(name)
	if !ok {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, name); err != nil {
		// Restaurar para no divergir de la BD.
		uc.registry.Restore(unit)
		return err
	}
	uc.invalidateAll(ctx)
	uc.log.Warn().Str("unit", name).Msg("unidad eliminada; sus referencias convierten con factor 1")
	return nil
}

func (uc *UnitUseCase) invalidateAll(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx, ""); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de costos")
	}
}
