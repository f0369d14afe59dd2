package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/roles"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
)

// capability es el predicado de rol que exige una ruta.
type capability func(entity.Role) bool

// requireCapability resuelve el rol de la sesión y corta con 403 si el
// predicado no se cumple. Debe usarse DESPUÉS de RequireSession.
//
// Estos chequeos son de presentación: la autorización autoritativa debe
// vivir en la política de acceso del store externo (row-level security o
// equivalente).
func requireCapability(resolver *roles.Resolver, allowed capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := GetSession(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "NO_SESSION", Message: "no autenticado",
			})
		}
		role := resolver.Resolve(c.Context(), sess.User.ID)
		c.Locals(LocalRole, role)
		if !allowed(role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "tu rol no permite esta acción",
			})
		}
		return c.Next()
	}
}

// RequireManageUsers exige la capacidad de gestión de usuarios y
// sugerencias (admin o superadmin).
func RequireManageUsers(resolver *roles.Resolver) fiber.Handler {
	return requireCapability(resolver, entity.Role.CanManageUsers)
}

// RequireManageAreas exige la capacidad de gestión de áreas (superadmin).
func RequireManageAreas(resolver *roles.Resolver) fiber.Handler {
	return requireCapability(resolver, entity.Role.CanManageAreas)
}

// RequireAnyRole solo resuelve y guarda el rol, sin cortar: las vistas de
// solo lectura del panel están abiertas a cualquier sesión (viewer incluido).
func RequireAnyRole(resolver *roles.Resolver) fiber.Handler {
	return requireCapability(resolver, func(entity.Role) bool { return true })
}

// GetRole devuelve el rol del contexto (después del middleware de rol).
func GetRole(c *fiber.Ctx) entity.Role {
	v := c.Locals(LocalRole)
	if v == nil {
		return entity.RoleViewer
	}
	r, ok := v.(entity.Role)
	if !ok {
		return entity.RoleViewer
	}
	return r
}
