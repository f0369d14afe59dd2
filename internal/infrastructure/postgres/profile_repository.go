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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Upsert inserta o actualiza el perfil por id. Idempotente, y el rol
// entrante pisa al existente: re-invitar una identidad la devuelve a viewer.
func (r *ProfileRepo) Upsert(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, role = EXCLUDED.role`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Email, string(p.Role), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por id de identidad.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT id, email, role, created_at FROM profiles WHERE id = $1`
	var p entity.Profile
	var role string
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email, &role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}
	p.Role = entity.Role(role)
	return &p, nil
}

// UpdateRole actualiza solo el campo rol.
func (r *ProfileRepo) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	tag, err := r.pool.Exec(ctx, `UPDATE profiles SET role = $2 WHERE id = $1`, id, string(role))
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// List devuelve los perfiles ordenados por fecha de creación descendente.
func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	query := `SELECT id, email, role, created_at FROM profiles ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		var role string
		if err := rows.Scan(&p.ID, &p.Email, &role, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p.Role = entity.Role(role)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina el perfil por id; sin error si no existe (el borrado de
// usuario debe poder continuar hacia la identidad).
func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
