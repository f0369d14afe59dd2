package roles_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/roles"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// fakeProfiles implementación en memoria del repositorio de perfiles.
type fakeProfiles struct {
	profiles map[string]*entity.Profile
	failWith error
}

func (f *fakeProfiles) Upsert(_ context.Context, p *entity.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) UpdateRole(_ context.Context, id string, role entity.Role) error {
	p, ok := f.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Role = role
	return nil
}

func (f *fakeProfiles) List(_ context.Context) ([]*entity.Profile, error) {
	var out []*entity.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfiles) Delete(_ context.Context, id string) error {
	delete(f.profiles, id)
	return nil
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*entity.Profile)}
}

func TestResolver_PerfilConRol(t *testing.T) {
	repo := newFakeProfiles()
	repo.profiles["id-1"] = &entity.Profile{
		ID: "id-1", Email: "admin@example.com", Role: entity.RoleAdmin, CreatedAt: time.Now(),
	}
	resolver := roles.NewResolver(repo, logger.Nop())

	assert.Equal(t, entity.RoleAdmin, resolver.Resolve(context.Background(), "id-1"))
}

// Identidad autenticada sin perfil: mínimo privilegio, no error.
func TestResolver_SinPerfilResuelveViewer(t *testing.T) {
	resolver := roles.NewResolver(newFakeProfiles(), logger.Nop())
	assert.Equal(t, entity.RoleViewer, resolver.Resolve(context.Background(), "fantasma"))
}

// Un fallo del store degrada a viewer en lugar de bloquear la navegación.
func TestResolver_FalloDelStoreDegradaAViewer(t *testing.T) {
	repo := newFakeProfiles()
	repo.failWith = errors.New("conexión perdida")
	resolver := roles.NewResolver(repo, logger.Nop())

	assert.Equal(t, entity.RoleViewer, resolver.Resolve(context.Background(), "id-1"))
}

// Un rol corrupto en la base (fuera de la enumeración) también degrada.
func TestResolver_RolInvalidoDegradaAViewer(t *testing.T) {
	repo := newFakeProfiles()
	repo.profiles["id-1"] = &entity.Profile{ID: "id-1", Role: entity.Role("root")}
	resolver := roles.NewResolver(repo, logger.Nop())

	assert.Equal(t, entity.RoleViewer, resolver.Resolve(context.Background(), "id-1"))
}
