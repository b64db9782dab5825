package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cocina-api/internal/domain"
	"github.com/jhoicas/Cocina-api/internal/domain/entity"
	"github.com/jhoicas/Cocina-api/internal/domain/repository"
)

var _ repository.MenuEventRepository = (*MenuEventRepo)(nil)

// MenuEventRepo eventos sobre PostgreSQL; sections (JSONB) incluye derived_portions.
type MenuEventRepo struct {
	q Querier
}

// NewMenuEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuEventRepository(q Querier) *MenuEventRepo {
	return &MenuEventRepo{q: q}
}

const menuEventColumns = `id, company_id, name, event_date, guest_count, serving_type, revenue_per_guest, sections, created_at, updated_at`

func (r *MenuEventRepo) Create(ctx context.Context, event *entity.MenuEvent) error {
	query := `INSERT INTO menu_events (` + menuEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		event.ID, event.CompanyID, event.Name, event.EventDate, event.GuestCount, event.ServingType,
		event.RevenuePerGuest, jsonList(event.Sections), event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert menu_event: %w", err)
	}
	return nil
}

func (r *MenuEventRepo) GetByID(ctx context.Context, id string) (*entity.MenuEvent, error) {
	query := `SELECT ` + menuEventColumns + ` FROM menu_events WHERE id = $1`
	ev, err := scanMenuEvent(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu_event: %w", err)
	}
	return ev, nil
}

func (r *MenuEventRepo) Update(ctx context.Context, event *entity.MenuEvent) error {
	query := `
		UPDATE menu_events SET name = $2, event_date = $3, guest_count = $4, serving_type = $5,
			revenue_per_guest = $6, sections = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		event.ID, event.Name, event.EventDate, event.GuestCount, event.ServingType,
		event.RevenuePerGuest, jsonList(event.Sections), event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update menu_event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany eventos más próximos primero.
func (r *MenuEventRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.MenuEvent, error) {
	query := `SELECT ` + menuEventColumns + ` FROM menu_events
		WHERE company_id = $1 ORDER BY event_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list menu_events: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MenuEvent, 0)
	for rows.Next() {
		ev, err := scanMenuEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu_event: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

func (r *MenuEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM menu_events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete menu_event: %w", err)
	}
	return nil
}

func scanMenuEvent(row pgx.Row) (*entity.MenuEvent, error) {
	var ev entity.MenuEvent
	err := row.Scan(
		&ev.ID, &ev.CompanyID, &ev.Name, &ev.EventDate, &ev.GuestCount, &ev.ServingType,
		&ev.RevenuePerGuest, &ev.Sections, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
