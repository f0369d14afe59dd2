package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/repository"
)

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación del puerto AreaRepository sobre PostgreSQL.
type AreaRepo struct {
	pool *pgxpool.Pool
}

// NewAreaRepository construye el adaptador de persistencia para áreas.
func NewAreaRepository(pool *pgxpool.Pool) *AreaRepo {
	return &AreaRepo{pool: pool}
}

// Create persiste un área nueva.
func (r *AreaRepo) Create(ctx context.Context, a *entity.Area) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO areas (id, name, created_at) VALUES ($1, $2, $3)`,
		a.ID, a.Name, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert area: %w", err)
	}
	return nil
}

// List devuelve las áreas ordenadas por nombre.
func (r *AreaRepo) List(ctx context.Context) ([]*entity.Area, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM areas ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina el área. Las sugerencias que la referencian no se tocan:
// el area_id queda colgante y el join lo resuelve a null.
func (r *AreaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
