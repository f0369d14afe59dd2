package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/directory"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	invited        []string
	recoveries     []string
	deleted        []string
	inviteErr      error
	deleteErr      error
	// calls registra el orden de las operaciones para verificar las sagas
	calls *[]string
}

func (f *fakeGateway) SignInWithPassword(context.Context, string, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}
func (f *fakeGateway) SendOTP(context.Context, string, bool) error { return nil }
func (f *fakeGateway) VerifyOTP(context.Context, string, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}
func (f *fakeGateway) ExchangeCode(context.Context, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}
func (f *fakeGateway) UpdatePassword(context.Context, string, string) error { return nil }
func (f *fakeGateway) SignOut(context.Context, string) error                { return nil }
func (f *fakeGateway) GetUser(context.Context, string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("no implementado")
}

func (f *fakeGateway) InviteByEmail(_ context.Context, email, _ string) (auth.Identity, error) {
	if f.inviteErr != nil {
		return auth.Identity{}, f.inviteErr
	}
	f.invited = append(f.invited, email)
	return auth.Identity{ID: "identity-" + email, Email: email}, nil
}

func (f *fakeGateway) SendRecovery(_ context.Context, email, _ string) error {
	f.recoveries = append(f.recoveries, email)
	return nil
}

func (f *fakeGateway) DeleteIdentity(_ context.Context, id string) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "identidad")
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProfiles struct {
	profiles  map[string]*entity.Profile
	upsertErr error
	deleteErr error
	calls     *[]string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*entity.Profile)}
}

func (f *fakeProfiles) Upsert(_ context.Context, p *entity.Profile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
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
	if f.calls != nil {
		*f.calls = append(*f.calls, "perfil")
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.profiles, id)
	return nil
}

func newManager(gw *fakeGateway, repo *fakeProfiles) *directory.Manager {
	return directory.NewManager(gw, repo, "http://localhost:8080/auth/callback", logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitación
// ──────────────────────────────────────────────────────────────────────────────

// Invitación completa: identidad aprovisionada y perfil viewer creado.
func TestInvite_CreaPerfilViewer(t *testing.T) {
	gw := &fakeGateway{}
	repo := newFakeProfiles()
	mgr := newManager(gw, repo)

	res, err := mgr.Invite(context.Background(), "nuevo@example.com")
	require.NoError(t, err)
	assert.True(t, res.ProfileCreated)

	p, err := repo.GetByID(context.Background(), res.IdentityID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, p.Role)
	assert.Equal(t, "nuevo@example.com", p.Email)
}

// Los pasos fallan de forma independiente: identidad invitada pero perfil
// no creado sigue siendo una invitación exitosa, con el paso reportado.
func TestInvite_FalloDePerfilNoAbortaLaInvitacion(t *testing.T) {
	gw := &fakeGateway{}
	repo := newFakeProfiles()
	repo.upsertErr = errors.New("tabla profiles inaccesible")
	mgr := newManager(gw, repo)

	res, err := mgr.Invite(context.Background(), "nuevo@example.com")
	require.NoError(t, err)
	assert.False(t, res.ProfileCreated)
	assert.NotEmpty(t, res.IdentityID)
}

// Si el aprovisionamiento falla, no hay perfil que crear.
func TestInvite_FalloDeIdentidad(t *testing.T) {
	gw := &fakeGateway{inviteErr: domain.ErrDuplicate}
	repo := newFakeProfiles()
	mgr := newManager(gw, repo)

	_, err := mgr.Invite(context.Background(), "existente@example.com")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, repo.profiles)
}

// Re-invitar la misma identidad es idempotente: el upsert no duplica filas y
// el perfil vuelve a viewer sin importar el rol que tuviera.
func TestInvite_Reinvitacion(t *testing.T) {
	gw := &fakeGateway{}
	repo := newFakeProfiles()
	mgr := newManager(gw, repo)

	res, err := mgr.Invite(context.Background(), "nuevo@example.com")
	require.NoError(t, err)
	require.NoError(t, mgr.UpdateRole(context.Background(), res.IdentityID, entity.RoleAdmin))

	_, err = mgr.Invite(context.Background(), "nuevo@example.com")
	require.NoError(t, err)

	assert.Len(t, repo.profiles, 1)
	p, err := repo.GetByID(context.Background(), res.IdentityID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, p.Role, "la re-invitación degrada el rol a viewer")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación
// ──────────────────────────────────────────────────────────────────────────────

// El borrado es secuencial y en orden fijo: primero perfil, después identidad.
func TestDeleteUser_OrdenPerfilPrimero(t *testing.T) {
	var calls []string
	gw := &fakeGateway{calls: &calls}
	repo := newFakeProfiles()
	repo.calls = &calls
	repo.profiles["id-1"] = &entity.Profile{ID: "id-1"}
	mgr := newManager(gw, repo)

	require.NoError(t, mgr.DeleteUser(context.Background(), "id-1"))
	assert.Equal(t, []string{"perfil", "identidad"}, calls)
}

// Un fallo del borrado de perfil no aborta: se intenta la identidad igual.
func TestDeleteUser_FalloDePerfilNoAborta(t *testing.T) {
	var calls []string
	gw := &fakeGateway{calls: &calls}
	repo := newFakeProfiles()
	repo.calls = &calls
	repo.deleteErr = errors.New("tabla profiles inaccesible")
	mgr := newManager(gw, repo)

	require.NoError(t, mgr.DeleteUser(context.Background(), "id-1"))
	assert.Equal(t, []string{"perfil", "identidad"}, calls)
}

// El resultado global es el del borrado de identidad.
func TestDeleteUser_FalloDeIdentidadSePropaga(t *testing.T) {
	gw := &fakeGateway{deleteErr: errors.New("proveedor caído")}
	repo := newFakeProfiles()
	repo.profiles["id-1"] = &entity.Profile{ID: "id-1"}
	mgr := newManager(gw, repo)

	err := mgr.DeleteUser(context.Background(), "id-1")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rol y restablecimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateRole_PromueveAAdmin(t *testing.T) {
	gw := &fakeGateway{}
	repo := newFakeProfiles()
	repo.profiles["id-1"] = &entity.Profile{ID: "id-1", Role: entity.RoleViewer}
	mgr := newManager(gw, repo)

	require.NoError(t, mgr.UpdateRole(context.Background(), "id-1", entity.RoleAdmin))

	p, _ := repo.GetByID(context.Background(), "id-1")
	assert.True(t, p.Role.CanManageUsers())
	assert.False(t, p.Role.CanManageAreas(), "admin no gestiona áreas")
}

func TestUpdateRole_PerfilInexistente(t *testing.T) {
	mgr := newManager(&fakeGateway{}, newFakeProfiles())
	err := mgr.UpdateRole(context.Background(), "fantasma", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

// El restablecimiento se dispara incondicionalmente, exista o no el email.
func TestResetPassword_SinCondiciones(t *testing.T) {
	gw := &fakeGateway{}
	mgr := newManager(gw, newFakeProfiles())

	require.NoError(t, mgr.ResetPassword(context.Background(), "cualquiera@example.com"))
	assert.Equal(t, []string{"cualquiera@example.com"}, gw.recoveries)
}
