// Package ports define los contratos de las dependencias externas de la capa
// de aplicación. El uso de interfaces evita acoplar los casos de uso a los
// clientes HTTP concretos y permite fakes en tests.
package ports

import (
	"context"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
)

// IdentityGateway envuelve al proveedor externo de identidad: emite y valida
// sesiones, intercambia códigos por sesiones y dispara los correos de
// invitación, recuperación y código de un solo uso.
//
// Los fallos del proveedor se propagan tal cual salvo dos normalizaciones:
// credenciales inválidas -> domain.ErrInvalidCredentials y código OTP
// inválido o expirado -> domain.ErrInvalidOTP.
type IdentityGateway interface {
	SignInWithPassword(ctx context.Context, email, password string) (auth.Session, error)
	// SendOTP dispara el envío de un código de un solo uso. allowNewIdentity
	// controla si un email desconocido se aprovisiona (true para el intake
	// público, false para el login OTP de admins).
	SendOTP(ctx context.Context, email string, allowNewIdentity bool) error
	VerifyOTP(ctx context.Context, email, code string) (auth.Session, error)
	// ExchangeCode completa un login iniciado por redirect (link de correo).
	ExchangeCode(ctx context.Context, code string) (auth.Session, error)
	// UpdatePassword requiere una sesión activa (posiblemente con alcance de
	// recuperación).
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (auth.Identity, error)

	// Operaciones con alcance administrativo (service key).
	InviteByEmail(ctx context.Context, email, redirectTo string) (auth.Identity, error)
	SendRecovery(ctx context.Context, email, redirectTo string) error
	DeleteIdentity(ctx context.Context, id string) error
}

// ObjectStorage almacena las imágenes adjuntas de una sugerencia y devuelve
// una URL públicamente resoluble por objeto.
type ObjectStorage interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
	// Fetch descarga un objeto por su URL pública (para incrustar en el PDF).
	Fetch(ctx context.Context, url string) ([]byte, error)
}
