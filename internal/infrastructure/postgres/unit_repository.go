package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/costing"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo tabla global units. La columna unit_key (nombre normalizado) es la PK, así la
// unicidad en BD coincide con la del registro en memoria.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, unit *entity.Unit) error {
	const query = `INSERT INTO units (unit_key, name, factor, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, costing.NormalizeUnitKey(unit.Name), unit.Name, unit.Factor, unit.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUnitAlreadyExists
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) List(ctx context.Context) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, `SELECT name, factor, created_at FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Unit, 0)
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.Name, &u.Factor, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM units WHERE unit_key = $1`, costing.NormalizeUnitKey(name)); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}
