package session

import (
	"context"
	"errors"
	"time"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/ports"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// Manager acopla el store de sesiones al bus de eventos y resuelve tokens a
// sesiones activas para el guard. Su construcción es el paso de
// inicialización del estado de sesión del proceso; Close es el teardown
// (cancela la suscripción al bus).
type Manager struct {
	store   Store
	gateway ports.IdentityGateway
	log     *logger.Logger
	cancel  func()
	done    chan struct{}
}

// NewManager construye el manager y arranca la escucha de eventos:
// SIGNED_IN guarda la sesión, SIGNED_OUT la elimina, PASSWORD_RECOVERY la
// marca con alcance de recuperación.
func NewManager(store Store, gateway ports.IdentityGateway, bus *Bus, log *logger.Logger) *Manager {
	events, cancel := bus.Subscribe()
	m := &Manager{
		store:   store,
		gateway: gateway,
		log:     log,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go m.listen(events)
	return m
}

func (m *Manager) listen(events <-chan auth.Event) {
	defer close(m.done)
	for e := range events {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		switch e.Kind {
		case auth.EventSignedIn:
			if err := m.store.Save(ctx, e.Session); err != nil {
				m.log.Warn().Err(err).Msg("guardar sesión en el store")
			}
		case auth.EventSignedOut:
			if err := m.store.Delete(ctx, e.AccessToken); err != nil {
				m.log.Warn().Err(err).Msg("eliminar sesión del store")
			}
		case auth.EventPasswordRecovery:
			if err := m.store.Save(ctx, recoveryScoped(e.Session)); err != nil {
				m.log.Warn().Err(err).Msg("marcar sesión de recuperación")
			}
		}
		cancel()
	}
}

func recoveryScoped(s auth.Session) auth.Session {
	s.Recovery = true
	return s
}

// Resolve devuelve la sesión activa del token. Si el store no la tiene
// (proceso reiniciado, cache vencido), se rehidrata validando el token
// contra el proveedor. Cualquier error inesperado resuelve a "sin sesión":
// el guard nunca se cuelga por un fallo del cache.
func (m *Manager) Resolve(ctx context.Context, accessToken string) (auth.Session, error) {
	if accessToken == "" {
		return auth.Session{}, ErrNoSession
	}
	s, err := m.store.Get(ctx, accessToken)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNoSession) {
		m.log.Warn().Err(err).Msg("store de sesiones falló, se intenta rehidratar")
	}

	identity, err := m.gateway.GetUser(ctx, accessToken)
	if err != nil {
		return auth.Session{}, ErrNoSession
	}
	s = auth.Session{
		AccessToken: accessToken,
		TokenType:   "bearer",
		// El vencimiento real lo conoce el proveedor; el cache rehidratado
		// usa una ventana corta y se revalida al expirar.
		ExpiresAt: time.Now().Add(5 * time.Minute),
		User:      identity,
	}
	if err := m.store.Save(ctx, s); err != nil {
		m.log.Warn().Err(err).Msg("rehidratar sesión en el store")
	}
	return s, nil
}

// Close detiene la escucha de eventos y espera el drenaje.
func (m *Manager) Close() {
	m.cancel()
	<-m.done
}
