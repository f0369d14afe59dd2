package auth

import (
	"context"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/ports"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	domauth "github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// AuthUseCase casos de uso de autenticación del panel: login con contraseña
// o con código, intercambio de authorization codes, actualización forzada de
// contraseña y cierre de sesión. Cada operación que cambia el estado de
// sesión publica el evento correspondiente en el bus.
type AuthUseCase struct {
	gateway ports.IdentityGateway
	bus     *session.Bus
	log     *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway ports.IdentityGateway, bus *session.Bus, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, bus: bus, log: log}
}

// LoginWithPassword autentica con email y contraseña y publica SIGNED_IN.
// El error de credenciales llega ya normalizado desde el gateway.
func (uc *AuthUseCase) LoginWithPassword(ctx context.Context, email, password string) (domauth.Session, error) {
	s, err := uc.gateway.SignInWithPassword(ctx, email, password)
	if err != nil {
		return domauth.Session{}, err
	}
	uc.bus.Publish(domauth.Event{Kind: domauth.EventSignedIn, AccessToken: s.AccessToken, Session: s})
	return s, nil
}

// SendLoginCode dispara el código de un solo uso para el login del panel.
// Los admins deben existir: un email desconocido no se aprovisiona.
func (uc *AuthUseCase) SendLoginCode(ctx context.Context, email string) error {
	return uc.gateway.SendOTP(ctx, email, false)
}

// VerifyLoginCode canjea el código por una sesión y publica SIGNED_IN.
func (uc *AuthUseCase) VerifyLoginCode(ctx context.Context, email, code string) (domauth.Session, error) {
	s, err := uc.gateway.VerifyOTP(ctx, email, code)
	if err != nil {
		return domauth.Session{}, err
	}
	uc.bus.Publish(domauth.Event{Kind: domauth.EventSignedIn, AccessToken: s.AccessToken, Session: s})
	return s, nil
}

// ExchangeCode completa un login iniciado por link de correo. Los links de
// invitación y de recuperación fuerzan el cambio de contraseña: se publica
// PASSWORD_RECOVERY en lugar de SIGNED_IN y la sesión queda con alcance de
// recuperación.
func (uc *AuthUseCase) ExchangeCode(ctx context.Context, code string, recovery bool) (domauth.Session, error) {
	s, err := uc.gateway.ExchangeCode(ctx, code)
	if err != nil {
		return domauth.Session{}, err
	}
	if recovery {
		s.Recovery = true
		uc.bus.Publish(domauth.Event{Kind: domauth.EventPasswordRecovery, AccessToken: s.AccessToken, Session: s})
	} else {
		uc.bus.Publish(domauth.Event{Kind: domauth.EventSignedIn, AccessToken: s.AccessToken, Session: s})
	}
	return s, nil
}

// UpdatePassword valida y actualiza la contraseña de la sesión activa. Al
// completarse, la sesión pierde el alcance de recuperación: se re-publica
// SIGNED_IN con la sesión limpia.
func (uc *AuthUseCase) UpdatePassword(ctx context.Context, sess domauth.Session, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.ErrWeakPassword
	}
	if sess.AccessToken == "" {
		return domain.ErrNotAuthenticated
	}
	if err := uc.gateway.UpdatePassword(ctx, sess.AccessToken, newPassword); err != nil {
		return err
	}
	sess.Recovery = false
	uc.bus.Publish(domauth.Event{Kind: domauth.EventSignedIn, AccessToken: sess.AccessToken, Session: sess})
	return nil
}

// SignOut invalida la sesión. SIGNED_OUT se publica aunque el proveedor
// falle: la invalidación local no depende de la remota.
func (uc *AuthUseCase) SignOut(ctx context.Context, accessToken string) error {
	err := uc.gateway.SignOut(ctx, accessToken)
	if err != nil {
		uc.log.Warn().Err(err).Msg("signout remoto falló, se invalida localmente")
	}
	uc.bus.Publish(domauth.Event{Kind: domauth.EventSignedOut, AccessToken: accessToken})
	return nil
}
