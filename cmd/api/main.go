package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/areas"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/auth"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/directory"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/intake"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/roles"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/suggestions"
	"github.com/aportes-sugerencias/sugerencias-api/internal/infrastructure/identity"
	infrapdf "github.com/aportes-sugerencias/sugerencias-api/internal/infrastructure/pdf"
	"github.com/aportes-sugerencias/sugerencias-api/internal/infrastructure/postgres"
	infraredis "github.com/aportes-sugerencias/sugerencias-api/internal/infrastructure/redis"
	"github.com/aportes-sugerencias/sugerencias-api/internal/infrastructure/storage"
	httpRouter "github.com/aportes-sugerencias/sugerencias-api/internal/interfaces/http"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/config"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Credenciales faltantes no frenan el arranque: deshabilitan flujos y
	// quedan advertidas.
	for _, w := range cfg.Identity.Warnings() {
		log.Warn().Msg(w)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	profileRepo := postgres.NewProfileRepository(pool)
	sugerenciaRepo := postgres.NewSugerenciaRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)

	identityClient := identity.New(cfg.Identity, log)
	storageClient := storage.New(cfg.Identity, cfg.Storage)

	// Estado de sesión del proceso: Redis si está configurado, memoria si no
	var sessionStore session.Store
	if cfg.Redis.Addr != "" {
		sessionStore = infraredis.NewSessionStore(infraredis.NewClient(cfg.Redis))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("store de sesiones en Redis")
	} else {
		sessionStore = session.NewMemoryStore()
		log.Warn().Msg("REDIS_ADDR no definido, store de sesiones en memoria")
	}
	bus := session.NewBus()
	sessionMgr := session.NewManager(sessionStore, identityClient, bus, log)
	defer func() {
		sessionMgr.Close()
		bus.Close()
	}()

	updatePasswordURL := cfg.App.URL + "/auth/callback"

	authUC := auth.NewAuthUseCase(identityClient, bus, log)
	intakeGate := intake.NewGate(identityClient, cfg.Intake)
	roleResolver := roles.NewResolver(profileRepo, log)
	directoryMgr := directory.NewManager(identityClient, profileRepo, updatePasswordURL, log)
	areaUC := areas.NewUseCase(areaRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	sugerenciaUC := suggestions.NewUseCase(sugerenciaRepo, storageClient, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    32 * 1024 * 1024, // formulario multipart con hasta 5 imágenes de 5MB
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		IntakeGate:   intakeGate,
		SugerenciaUC: sugerenciaUC,
		DirectoryMgr: directoryMgr,
		AreaUC:       areaUC,
		RoleResolver: roleResolver,
		Sessions:     sessionMgr,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
