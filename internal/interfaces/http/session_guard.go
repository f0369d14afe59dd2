package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
)

// SessionCookie nombre de la cookie que transporta el access token del panel.
const SessionCookie = "sugerencias_session"

// Locals keys para la sesión y el rol en Fiber.
const (
	LocalSession = "session"
	LocalRole    = "role"
)

// Rutas del surface administrativo.
const (
	RouteLogin          = "/admin/login"
	RouteDashboard      = "/admin/dashboard"
	RouteUpdatePassword = "/admin/update-password"
)

// SessionGuard es el gate evaluado en cada navegación del surface
// administrativo. Máquina de estados sobre {sin sesión, con sesión} ×
// {ruta pública, ruta protegida}, con dos overrides: una sesión con alcance
// de recuperación fuerza la ruta de actualización de contraseña, y la
// ausencia de sesión en ruta protegida fuerza el login.
type SessionGuard struct {
	manager *session.Manager
}

// NewSessionGuard construye el guard sobre el manager de sesiones.
func NewSessionGuard(manager *session.Manager) *SessionGuard {
	return &SessionGuard{manager: manager}
}

// resolve devuelve la sesión activa de la request, o nil si no hay. Un
// error inesperado del store resuelve a "sin sesión": el guard nunca se
// cuelga ni filtra contenido protegido por un fallo del cache.
func (g *SessionGuard) resolve(c *fiber.Ctx) *auth.Session {
	token := c.Cookies(SessionCookie)
	if token == "" {
		token = bearerToken(c)
	}
	if token == "" {
		return nil
	}
	s, err := g.manager.Resolve(c.Context(), token)
	if err != nil {
		return nil
	}
	return &s
}

// Pages devuelve el middleware de navegación para las páginas /admin/*.
func (g *SessionGuard) Pages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := g.resolve(c)
		path := c.Path()
		isPublic := path == RouteLogin

		switch {
		case sess != nil && sess.Recovery && path != RouteUpdatePassword:
			// PASSWORD_RECOVERY tiene prioridad sobre el resto del grafo
			return c.Redirect(RouteUpdatePassword, fiber.StatusSeeOther)
		case sess == nil && !isPublic:
			return c.Redirect(RouteLogin, fiber.StatusSeeOther)
		case sess != nil && isPublic:
			return c.Redirect(RouteDashboard, fiber.StatusSeeOther)
		}
		if sess != nil {
			c.Locals(LocalSession, *sess)
		}
		return c.Next()
	}
}

// RequireSession devuelve el middleware de las rutas de API protegidas:
// sin redirects, responde 401 si no hay sesión activa.
func (g *SessionGuard) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := g.resolve(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "NO_SESSION", Message: "no autenticado",
			})
		}
		c.Locals(LocalSession, *sess)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del guard).
func GetSession(c *fiber.Ctx) (auth.Session, bool) {
	v := c.Locals(LocalSession)
	if v == nil {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
