package intake_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/intake"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/config"
)

// otpGateway fake mínimo: solo los métodos OTP tienen comportamiento.
type otpGateway struct {
	sent     []string
	allowNew []bool
	// code válido esperado en VerifyOTP
	code string
}

func (g *otpGateway) SignInWithPassword(context.Context, string, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}

func (g *otpGateway) SendOTP(_ context.Context, email string, allowNewIdentity bool) error {
	g.sent = append(g.sent, email)
	g.allowNew = append(g.allowNew, allowNewIdentity)
	return nil
}

func (g *otpGateway) VerifyOTP(_ context.Context, email, code string) (auth.Session, error) {
	if code != g.code {
		return auth.Session{}, domain.ErrInvalidOTP
	}
	return auth.Session{AccessToken: "tok", User: auth.Identity{Email: email}}, nil
}

func (g *otpGateway) ExchangeCode(context.Context, string) (auth.Session, error) {
	return auth.Session{}, errors.New("no implementado")
}
func (g *otpGateway) UpdatePassword(context.Context, string, string) error { return nil }
func (g *otpGateway) SignOut(context.Context, string) error                { return nil }
func (g *otpGateway) GetUser(context.Context, string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("no implementado")
}
func (g *otpGateway) InviteByEmail(context.Context, string, string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("no implementado")
}
func (g *otpGateway) SendRecovery(context.Context, string, string) error { return nil }
func (g *otpGateway) DeleteIdentity(context.Context, string) error       { return nil }

func testGate(gw *otpGateway) *intake.Gate {
	return intake.NewGate(gw, config.IntakeConfig{
		Secret:     "test-secret",
		ExpMinutes: 30,
		Issuer:     "sugerencias-test",
	})
}

// El intake público aprovisiona emails desconocidos (a diferencia del login
// OTP de admins).
func TestGate_RequestCodePermiteEmailsNuevos(t *testing.T) {
	gw := &otpGateway{}
	gate := testGate(gw)

	require.NoError(t, gate.RequestCode(context.Background(), "vecino@example.com"))
	require.Len(t, gw.allowNew, 1)
	assert.True(t, gw.allowNew[0])
}

// Código correcto: token emitido y el email queda atado a él.
func TestGate_VerifyCodeEmiteToken(t *testing.T) {
	gw := &otpGateway{code: "123456"}
	gate := testGate(gw)

	token, err := gate.VerifyCode(context.Background(), "vecino@example.com", "123456")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := gate.VerifiedEmail(token)
	require.NoError(t, err)
	assert.Equal(t, "vecino@example.com", email)
}

// Código incorrecto: error normalizado y ningún token emitido.
func TestGate_CodigoIncorrectoSinToken(t *testing.T) {
	gw := &otpGateway{code: "123456"}
	gate := testGate(gw)

	token, err := gate.VerifyCode(context.Background(), "vecino@example.com", "000000")
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	assert.Empty(t, token)
}

func TestGate_TokenAjenoNoValida(t *testing.T) {
	gate := testGate(&otpGateway{})
	_, err := gate.VerifiedEmail("token-falsificado")
	assert.Error(t, err)
}
