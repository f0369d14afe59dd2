package repository

import (
	"context"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para Profile (DIP).
// Upsert es idempotente por id: re-invocar la invitación sobre una identidad
// existente no debe fallar ni duplicar filas, y el rol entrante reemplaza al
// almacenado (la re-invitación siempre deja el perfil en viewer).
type ProfileRepository interface {
	Upsert(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	UpdateRole(ctx context.Context, id string, role entity.Role) error
	List(ctx context.Context) ([]*entity.Profile, error)
	Delete(ctx context.Context, id string) error
}
