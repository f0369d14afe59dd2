// Package intake implementa el gate público de verificación por código: un
// visitante anónimo verifica su email y recibe un token firmado que ata ese
// email al envío de la sugerencia. No crea rol ni perfil.
package intake

import (
	"context"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/ports"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/config"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/jwt"
)

// Gate casos de uso del intake público.
type Gate struct {
	gateway ports.IdentityGateway
	cfg     config.IntakeConfig
}

// NewGate construye el gate.
func NewGate(gateway ports.IdentityGateway, cfg config.IntakeConfig) *Gate {
	return &Gate{gateway: gateway, cfg: cfg}
}

// RequestCode dispara el código de un solo uso. A diferencia del login de
// admins, un email desconocido sí se aprovisiona.
func (g *Gate) RequestCode(ctx context.Context, email string) error {
	return g.gateway.SendOTP(ctx, email, true)
}

// VerifyCode canjea el código y devuelve el token de intake con el email
// verificado. El campo email del envío queda fijado a este valor.
func (g *Gate) VerifyCode(ctx context.Context, email, code string) (string, error) {
	if _, err := g.gateway.VerifyOTP(ctx, email, code); err != nil {
		return "", err
	}
	return jwt.GenerateIntake(g.cfg.Secret, email, g.cfg.Issuer, g.cfg.ExpMinutes)
}

// VerifiedEmail valida un token de intake y devuelve el email atado.
func (g *Gate) VerifiedEmail(token string) (string, error) {
	return jwt.ParseIntake(g.cfg.Secret, token)
}
