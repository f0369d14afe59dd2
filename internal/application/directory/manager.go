// Package directory implementa la gestión del directorio de usuarios del
// panel: invitación, cambio de rol, restablecimiento de contraseña y
// eliminación. Las operaciones de dos pasos (invitar = aprovisionar +
// upsert; eliminar = perfil + identidad) son sagas secuenciales con reporte
// por paso, sin rollback: el store externo no ofrece transacción entre
// entidades.
package directory

import (
	"context"
	"time"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/ports"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/repository"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// Manager casos de uso del directorio de usuarios.
type Manager struct {
	gateway  ports.IdentityGateway
	profiles repository.ProfileRepository
	// updatePasswordURL destino del redirect de los correos de invitación y
	// recuperación, de vuelta a la ruta de actualización de contraseña.
	updatePasswordURL string
	log               *logger.Logger
}

// NewManager construye el manager del directorio.
func NewManager(gateway ports.IdentityGateway, profiles repository.ProfileRepository, updatePasswordURL string, log *logger.Logger) *Manager {
	return &Manager{
		gateway:           gateway,
		profiles:          profiles,
		updatePasswordURL: updatePasswordURL,
		log:               log,
	}
}

// InviteResult reporte por paso de la invitación. "Invitado" y "tiene
// perfil" fallan de forma independiente.
type InviteResult struct {
	IdentityID     string
	ProfileCreated bool
}

// Invite aprovisiona la identidad (envía el correo de invitación) y luego
// upserta el perfil con rol viewer. El upsert es idempotente por id. Si el
// aprovisionamiento funcionó pero el upsert falla, la invitación se reporta
// exitosa igual y la inconsistencia queda registrada.
func (m *Manager) Invite(ctx context.Context, email string) (InviteResult, error) {
	identity, err := m.gateway.InviteByEmail(ctx, email, m.updatePasswordURL)
	if err != nil {
		return InviteResult{}, err
	}

	res := InviteResult{IdentityID: identity.ID}
	profile := &entity.Profile{
		ID:        identity.ID,
		Email:     email,
		Role:      entity.RoleViewer,
		CreatedAt: time.Now(),
	}
	if err := m.profiles.Upsert(ctx, profile); err != nil {
		m.log.Error().Err(err).Str("identity_id", identity.ID).
			Msg("identidad invitada pero el perfil no se pudo crear")
		return res, nil
	}
	res.ProfileCreated = true
	return res, nil
}

// UpdateRole cambia el rol del perfil. Sin guard de auto-democión más allá
// de lo que imponga la política del store; el caller revierte su estado
// optimista re-consultando si esto falla.
func (m *Manager) UpdateRole(ctx context.Context, identityID string, role entity.Role) error {
	return m.profiles.UpdateRole(ctx, identityID, role)
}

// ResetPassword dispara el correo de restablecimiento incondicionalmente:
// no se expone si el email existe (evita enumeración).
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	return m.gateway.SendRecovery(ctx, email, m.updatePasswordURL)
}

// DeleteUser elimina primero el perfil y después la identidad, en ese orden
// y secuencialmente. El orden tolera la falta de cascada en el store. Un
// fallo del borrado de perfil se registra pero no aborta; el resultado
// global es el del borrado de identidad. Si la identidad falla tras borrar
// el perfil, el registro queda inconsistente: documentado, no oculto.
func (m *Manager) DeleteUser(ctx context.Context, identityID string) error {
	if err := m.profiles.Delete(ctx, identityID); err != nil {
		m.log.Error().Err(err).Str("identity_id", identityID).
			Msg("borrar perfil falló, se intenta borrar la identidad igual")
	}
	return m.gateway.DeleteIdentity(ctx, identityID)
}

// List devuelve los perfiles ordenados por fecha de creación descendente.
func (m *Manager) List(ctx context.Context) ([]*entity.Profile, error) {
	return m.profiles.List(ctx)
}
