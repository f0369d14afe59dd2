// Package http expone la superficie HTTP: el formulario público de
// sugerencias con su gate de verificación, los flujos de auth del panel y
// las rutas administrativas protegidas por sesión y rol.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/areas"
	authuc "github.com/aportes-sugerencias/sugerencias-api/internal/application/auth"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/directory"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/intake"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/roles"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/suggestions"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *authuc.AuthUseCase
	IntakeGate   *intake.Gate
	SugerenciaUC *suggestions.UseCase
	DirectoryMgr *directory.Manager
	AreaUC       *areas.UseCase
	RoleResolver *roles.Resolver
	Sessions     *session.Manager
	Log          *logger.Logger
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	guard := NewSessionGuard(deps.Sessions)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	intakeHandler := NewIntakeHandler(deps.IntakeGate, deps.Log)
	sugerenciaHandler := NewSugerenciaHandler(deps.SugerenciaUC, deps.IntakeGate, deps.Log)
	usuarioHandler := NewUsuarioHandler(deps.DirectoryMgr, deps.Log)
	areaHandler := NewAreaHandler(deps.AreaUC, deps.Log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Callback de los links de correo (invitación, recuperación)
	app.Get("/auth/callback", authHandler.Callback)

	api := app.Group("/api")

	// Auth del panel (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/otp", authHandler.SendCode)
	authGroup.Post("/otp/verify", authHandler.VerifyCode)
	authGroup.Post("/update-password", guard.RequireSession(), authHandler.UpdatePassword)
	authGroup.Post("/logout", guard.RequireSession(), authHandler.Logout)

	// Gate público de intake y envío de sugerencias
	intakeGroup := api.Group("/intake")
	intakeGroup.Post("/otp", intakeHandler.RequestCode)
	intakeGroup.Post("/otp/verify", intakeHandler.VerifyCode)
	api.Post("/sugerencias", sugerenciaHandler.Submit)

	// Áreas: el listado es público, lo consume el formulario de envío
	api.Get("/areas", areaHandler.List)

	// Rutas administrativas (sesión + rol)
	admin := api.Group("/admin", guard.RequireSession())

	// Lectura abierta a cualquier sesión (viewer incluido); solo la
	// transición de estado y el borrado exigen capacidad de gestión.
	sugerencias := admin.Group("/sugerencias", RequireAnyRole(deps.RoleResolver))
	sugerencias.Get("/", sugerenciaHandler.List)
	sugerencias.Get("/:id", sugerenciaHandler.Get)
	sugerencias.Get("/:id/pdf", sugerenciaHandler.ExportPDF)
	sugerencias.Patch("/:id/status", RequireManageUsers(deps.RoleResolver), sugerenciaHandler.UpdateStatus)
	sugerencias.Delete("/:id", RequireManageUsers(deps.RoleResolver), sugerenciaHandler.Delete)

	usuarios := admin.Group("/usuarios", RequireManageUsers(deps.RoleResolver))
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Post("/invite", usuarioHandler.Invite)
	usuarios.Post("/reset-password", usuarioHandler.ResetPassword)
	usuarios.Patch("/:id/role", usuarioHandler.UpdateRole)
	usuarios.Delete("/:id", usuarioHandler.Delete)

	adminAreas := admin.Group("/areas", RequireManageAreas(deps.RoleResolver))
	adminAreas.Post("/", areaHandler.Create)
	adminAreas.Delete("/:id", areaHandler.Delete)

	registerPages(app, guard, deps.RoleResolver)
}

// registerPages registra las páginas del panel detrás del guard de
// navegación. Son stubs JSON: el shell del panel lo renderiza el frontend;
// lo que importa acá es el grafo de redirects.
func registerPages(app *fiber.App, guard *SessionGuard, resolver *roles.Resolver) {
	pages := app.Group("/admin", guard.Pages())

	pages.Get("/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "login"})
	})
	pages.Get("/update-password", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "update-password"})
	})
	pages.Get("/dashboard", RequireAnyRole(resolver), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "dashboard", "role": string(GetRole(c))})
	})
	pages.Get("/usuarios", RequireManageUsers(resolver), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "usuarios", "role": string(GetRole(c))})
	})
	pages.Get("/areas", RequireManageAreas(resolver), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "areas", "role": string(GetRole(c))})
	})
}
