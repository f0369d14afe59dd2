// Package roles resuelve el rol de una identidad autenticada desde su
// perfil y expone los predicados de capacidad. Los predicados son chequeos
// de la capa de presentación: la autorización autoritativa debe vivir en la
// política de acceso del store externo.
package roles

import (
	"context"
	"errors"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/repository"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// Resolver carga el rol de un perfil por id de identidad.
type Resolver struct {
	profiles repository.ProfileRepository
	log      *logger.Logger
}

// NewResolver construye el resolver de roles.
func NewResolver(profiles repository.ProfileRepository, log *logger.Logger) *Resolver {
	return &Resolver{profiles: profiles, log: log}
}

// Resolve devuelve el rol de la identidad. La ausencia de perfil no es un
// error: resuelve a viewer (mínimo privilegio). Un fallo del store también
// degrada a viewer para no bloquear la lectura, pero se registra.
func (r *Resolver) Resolve(ctx context.Context, identityID string) entity.Role {
	p, err := r.profiles.GetByID(ctx, identityID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			r.log.Warn().Err(err).Str("identity_id", identityID).Msg("resolver rol")
		}
		return entity.RoleViewer
	}
	if p == nil || !p.Role.Valid() {
		return entity.RoleViewer
	}
	return p.Role
}
