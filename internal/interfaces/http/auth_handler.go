package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	authuc "github.com/aportes-sugerencias/sugerencias-api/internal/application/auth"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	domauth "github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// AuthHandler expone los flujos de autenticación del panel.
type AuthHandler struct {
	auth *authuc.AuthUseCase
	log  *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(auth *authuc.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// setSessionCookie deja el access token en la cookie del panel, con
// vencimiento alineado al de la sesión.
func setSessionCookie(c *fiber.Ctx, s domauth.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    s.AccessToken,
		Expires:  s.ExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func sessionResponse(s domauth.Session) dto.SessionResponse {
	return dto.SessionResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresAt:   s.ExpiresAt.Unix(),
		Email:       s.User.Email,
		Recovery:    s.Recovery,
	}
}

// Login autentica con email y contraseña.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "email y contraseña son obligatorios",
		})
	}

	s, err := h.auth.LoginWithPassword(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "INVALID_CREDENTIALS", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("login con contraseña falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "IDENTITY_UNAVAILABLE", Message: "el proveedor de identidad no respondió",
		})
	}
	setSessionCookie(c, s)
	return c.JSON(sessionResponse(s))
}

// SendCode dispara el código de un solo uso para el login del panel.
// POST /api/auth/otp
func (h *AuthHandler) SendCode(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "email es obligatorio",
		})
	}
	if err := h.auth.SendLoginCode(c.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("envío de código de login falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SEND_FAILED", Message: "no se pudo enviar el código",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "código enviado"})
}

// VerifyCode canjea el código por una sesión.
// POST /api/auth/otp/verify
func (h *AuthHandler) VerifyCode(c *fiber.Ctx) error {
	var req dto.OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "email y código son obligatorios",
		})
	}
	s, err := h.auth.VerifyLoginCode(c.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "INVALID_OTP", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("verificación de código de login falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "IDENTITY_UNAVAILABLE", Message: "el proveedor de identidad no respondió",
		})
	}
	setSessionCookie(c, s)
	return c.JSON(sessionResponse(s))
}

// Callback completa un login iniciado por link de correo (invitación o
// recuperación). Con type=invite o type=recovery la sesión queda con alcance
// de recuperación y el destino es la actualización de contraseña.
// GET /auth/callback?code=...&type=...
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Redirect(RouteLogin+"?error=auth_callback_error", fiber.StatusSeeOther)
	}
	linkType := c.Query("type")
	recovery := linkType == "invite" || linkType == "recovery"

	s, err := h.auth.ExchangeCode(c.Context(), code, recovery)
	if err != nil {
		h.log.Warn().Err(err).Msg("intercambio de authorization code falló")
		return c.Redirect(RouteLogin+"?error=auth_callback_error", fiber.StatusSeeOther)
	}
	setSessionCookie(c, s)
	if recovery {
		return c.Redirect(RouteUpdatePassword, fiber.StatusSeeOther)
	}
	return c.Redirect(RouteDashboard, fiber.StatusSeeOther)
}

// UpdatePassword actualiza la contraseña de la sesión activa. Requiere
// sesión (alcanza con la de recuperación).
// POST /api/auth/update-password
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	sess, ok := GetSession(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "NO_SESSION", Message: "no autenticado",
		})
	}
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	if req.Password != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "PASSWORD_MISMATCH", Message: "las contraseñas no coinciden",
		})
	}
	if err := h.auth.UpdatePassword(c.Context(), sess, req.Password); err != nil {
		if errors.Is(err, domain.ErrWeakPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "WEAK_PASSWORD", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("actualización de contraseña falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "IDENTITY_UNAVAILABLE", Message: "el proveedor de identidad no respondió",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "contraseña actualizada"})
}

// Logout cierra la sesión y limpia la cookie. La invalidación local no
// depende de que el proveedor responda.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, ok := GetSession(c); ok {
		_ = h.auth.SignOut(c.Context(), sess.AccessToken)
	}
	clearSessionCookie(c)
	return c.JSON(dto.ResultResponse{Success: true, Message: "sesión cerrada"})
}
