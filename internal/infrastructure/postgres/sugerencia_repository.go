package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/repository"
)

var _ repository.SugerenciaRepository = (*SugerenciaRepo)(nil)

// SugerenciaRepo implementación del puerto SugerenciaRepository sobre PostgreSQL.
type SugerenciaRepo struct {
	pool *pgxpool.Pool
}

// NewSugerenciaRepository construye el adaptador de persistencia para sugerencias.
func NewSugerenciaRepository(pool *pgxpool.Pool) *SugerenciaRepo {
	return &SugerenciaRepo{pool: pool}
}

// Create persiste una nueva sugerencia.
func (r *SugerenciaRepo) Create(ctx context.Context, s *entity.Sugerencia) error {
	query := `
		INSERT INTO sugerencias (id, nombre, apellido, email, zona, area_id, descripcion, images, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Nombre, s.Apellido, s.Email, s.Zona, s.AreaID, s.Descripcion,
		s.Images, string(s.Status), s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sugerencia: %w", err)
	}
	return nil
}

const joinedSelect = `
	SELECT s.id, s.nombre, s.apellido, s.email, s.zona, s.area_id,
	       COALESCE(a.name, ''), s.descripcion, s.images, s.status, s.created_at
	FROM sugerencias s
	LEFT JOIN areas a ON a.id = s.area_id`

const plainSelect = `
	SELECT s.id, s.nombre, s.apellido, s.email, s.zona, s.area_id,
	       '', s.descripcion, s.images, s.status, s.created_at
	FROM sugerencias s`

// GetByID obtiene una sugerencia con el nombre de área resuelto por join;
// si el join no está disponible (esquema a medio migrar) degrada a la forma
// sin join.
func (r *SugerenciaRepo) GetByID(ctx context.Context, id string) (*entity.Sugerencia, error) {
	s, err := r.scanOne(ctx, joinedSelect+` WHERE s.id = $1`, id)
	if err != nil && isUndefinedRelation(err) {
		s, err = r.scanOne(ctx, plainSelect+` WHERE s.id = $1`, id)
	}
	return s, err
}

func (r *SugerenciaRepo) scanOne(ctx context.Context, query, id string) (*entity.Sugerencia, error) {
	var s entity.Sugerencia
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Nombre, &s.Apellido, &s.Email, &s.Zona, &s.AreaID,
		&s.AreaName, &s.Descripcion, &s.Images, &status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("get sugerencia by id: %w", err)
	}
	s.Status = entity.Status(status)
	return &s, nil
}

// List devuelve todas las sugerencias, más recientes primero, con el área
// resuelta por join y fallback a la forma sin join.
func (r *SugerenciaRepo) List(ctx context.Context) ([]*entity.Sugerencia, error) {
	list, err := r.scanMany(ctx, joinedSelect+` ORDER BY s.created_at DESC`)
	if err != nil && isUndefinedRelation(err) {
		list, err = r.scanMany(ctx, plainSelect+` ORDER BY s.created_at DESC`)
	}
	return list, err
}

func (r *SugerenciaRepo) scanMany(ctx context.Context, query string) ([]*entity.Sugerencia, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sugerencias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sugerencia
	for rows.Next() {
		var s entity.Sugerencia
		var status string
		if err := rows.Scan(
			&s.ID, &s.Nombre, &s.Apellido, &s.Email, &s.Zona, &s.AreaID,
			&s.AreaName, &s.Descripcion, &s.Images, &status, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sugerencia: %w", err)
		}
		s.Status = entity.Status(status)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza solo el estado. Ningún otro campo del reportante es
// editable después de la creación.
func (r *SugerenciaRepo) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sugerencias SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSuggestionNotFound
	}
	return nil
}

// Delete elimina la sugerencia por id.
func (r *SugerenciaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sugerencias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sugerencia: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSuggestionNotFound
	}
	return nil
}
