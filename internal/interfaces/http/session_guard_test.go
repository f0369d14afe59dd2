package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	apphttp "github.com/aportes-sugerencias/sugerencias-api/internal/interfaces/http"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// nullGateway rechaza todo token: sin rehidratación posible.
type nullGateway struct{}

func (nullGateway) SignInWithPassword(context.Context, string, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}
func (nullGateway) SendOTP(context.Context, string, bool) error { return nil }
func (nullGateway) VerifyOTP(context.Context, string, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}
func (nullGateway) ExchangeCode(context.Context, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}
func (nullGateway) UpdatePassword(context.Context, string, string) error { return nil }
func (nullGateway) SignOut(context.Context, string) error                { return nil }
func (nullGateway) GetUser(context.Context, string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("token inválido")
}
func (nullGateway) InviteByEmail(context.Context, string, string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("no implementado")
}
func (nullGateway) SendRecovery(context.Context, string, string) error { return nil }
func (nullGateway) DeleteIdentity(context.Context, string) error       { return nil }

// buildGuardApp construye la app mínima con el guard de navegación sobre las
// páginas del panel y una ruta de API protegida.
func buildGuardApp(t *testing.T) (*fiber.App, session.Store, func()) {
	t.Helper()
	store := session.NewMemoryStore()
	bus := session.NewBus()
	mgr := session.NewManager(store, nullGateway{}, bus, logger.Nop())
	teardown := func() {
		mgr.Close()
		bus.Close()
	}

	app := fiber.New()
	guard := apphttp.NewSessionGuard(mgr)

	pages := app.Group("/admin", guard.Pages())
	for _, p := range []string{"/login", "/dashboard", "/update-password"} {
		page := p
		pages.Get(page, func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"page": page})
		})
	}

	app.Get("/api/admin/ping", guard.RequireSession(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app, store, teardown
}

func seedSession(t *testing.T, store session.Store, token string, recovery bool) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), auth.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        auth.Identity{ID: "id-1", Email: "admin@example.com"},
		Recovery:    recovery,
	}))
}

func getPage(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de navegación del guard
// ──────────────────────────────────────────────────────────────────────────────

// Sin sesión × ruta protegida → redirect al login.
func TestGuard_SinSesionRutaProtegida(t *testing.T) {
	app, _, teardown := buildGuardApp(t)
	defer teardown()

	resp := getPage(t, app, "/admin/dashboard", "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

// Sin sesión × login → pasa.
func TestGuard_SinSesionLogin(t *testing.T) {
	app, _, teardown := buildGuardApp(t)
	defer teardown()

	resp := getPage(t, app, "/admin/login", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Con sesión × login → redirect al dashboard.
func TestGuard_ConSesionLogin(t *testing.T) {
	app, store, teardown := buildGuardApp(t)
	defer teardown()
	seedSession(t, store, "tok-1", false)

	resp := getPage(t, app, "/admin/login", "tok-1")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
}

// Con sesión × ruta protegida → pasa.
func TestGuard_ConSesionRutaProtegida(t *testing.T) {
	app, store, teardown := buildGuardApp(t)
	defer teardown()
	seedSession(t, store, "tok-1", false)

	resp := getPage(t, app, "/admin/dashboard", "tok-1")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Sesión de recuperación → forzada a update-password desde cualquier ruta.
func TestGuard_RecuperacionForzadaAUpdatePassword(t *testing.T) {
	app, store, teardown := buildGuardApp(t)
	defer teardown()
	seedSession(t, store, "tok-rec", true)

	for _, path := range []string{"/admin/dashboard", "/admin/login"} {
		resp := getPage(t, app, path, "tok-rec")
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, "desde %s", path)
		assert.Equal(t, "/admin/update-password", resp.Header.Get("Location"))
	}

	// en update-password sí pasa
	resp := getPage(t, app, "/admin/update-password", "tok-rec")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// failingStore simula un cache de sesiones caído: todo error inesperado.
type failingStore struct{}

func (failingStore) Save(context.Context, auth.Session) error { return errors.New("cache caído") }
func (failingStore) Get(context.Context, string) (auth.Session, error) {
	return auth.Session{}, errors.New("cache caído")
}
func (failingStore) Delete(context.Context, string) error       { return errors.New("cache caído") }
func (failingStore) MarkRecovery(context.Context, string) error { return errors.New("cache caído") }

// Un fallo inesperado del store (no "sesión ausente") resuelve a "sin
// sesión": el guard redirige al login y la API responde 401, nunca filtra
// contenido protegido ni se cuelga.
func TestGuard_FalloDelStoreResuelveSinSesion(t *testing.T) {
	bus := session.NewBus()
	defer bus.Close()
	mgr := session.NewManager(failingStore{}, nullGateway{}, bus, logger.Nop())
	defer mgr.Close()

	app := fiber.New()
	guard := apphttp.NewSessionGuard(mgr)
	app.Get("/admin/dashboard", guard.Pages(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "dashboard"})
	})
	app.Get("/api/admin/ping", guard.RequireSession(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	resp := getPage(t, app, "/admin/dashboard", "tok-1")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp = getPage(t, app, "/api/admin/ping", "tok-1")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Un token desconocido (sesión vencida o inventada) equivale a no tener
// sesión: el guard no se cuelga ni filtra contenido.
func TestGuard_TokenDesconocido(t *testing.T) {
	app, _, teardown := buildGuardApp(t)
	defer teardown()

	resp := getPage(t, app, "/admin/dashboard", "tok-falso")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Variante API: 401 en vez de redirect
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireSession_SinSesion(t *testing.T) {
	app, _, teardown := buildGuardApp(t)
	defer teardown()

	resp := getPage(t, app, "/api/admin/ping", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireSession_ConSesion(t *testing.T) {
	app, store, teardown := buildGuardApp(t)
	defer teardown()
	seedSession(t, store, "tok-1", false)

	resp := getPage(t, app, "/api/admin/ping", "tok-1")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// El token también puede venir como Bearer en Authorization.
func TestRequireSession_BearerHeader(t *testing.T) {
	app, store, teardown := buildGuardApp(t)
	defer teardown()
	seedSession(t, store, "tok-1", false)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
