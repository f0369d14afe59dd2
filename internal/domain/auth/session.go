// Package auth define los tipos de sesión e identidad emitidos por el
// proveedor externo, y los eventos de ciclo de vida que observan los
// consumidores (guard de sesión, store de sesiones).
package auth

import "time"

// Identity es la identidad mínima que expone el proveedor externo.
type Identity struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// Session es la sesión efímera emitida por el proveedor. Recovery marca una
// sesión con alcance de recuperación de contraseña: el guard la redirige
// forzosamente a la ruta de actualización de contraseña.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         Identity  `json:"user"`
	Recovery     bool      `json:"recovery"`
}

// Expired indica si la sesión ya venció.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// EventKind es el tipo de evento de ciclo de vida de sesión.
type EventKind string

// Eventos emitidos por el gateway de identidad, en orden de emisión.
const (
	EventSignedIn         EventKind = "SIGNED_IN"
	EventSignedOut        EventKind = "SIGNED_OUT"
	EventPasswordRecovery EventKind = "PASSWORD_RECOVERY"
)

// Event es un evento de sesión con la sesión asociada (vacía en SIGNED_OUT,
// donde solo importa el token invalidado).
type Event struct {
	Kind        EventKind
	AccessToken string
	Session     Session
}
