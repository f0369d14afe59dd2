package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/intake"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// IntakeHandler expone el gate público de verificación por código.
type IntakeHandler struct {
	gate *intake.Gate
	log  *logger.Logger
}

// NewIntakeHandler construye el handler de intake.
func NewIntakeHandler(gate *intake.Gate, log *logger.Logger) *IntakeHandler {
	return &IntakeHandler{gate: gate, log: log}
}

// RequestCode envía el código de verificación al email del visitante.
// POST /api/intake/otp
func (h *IntakeHandler) RequestCode(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "email es obligatorio",
		})
	}
	if err := h.gate.RequestCode(c.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("envío de código de intake falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SEND_FAILED", Message: "no se pudo enviar el código",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "código enviado"})
}

// VerifyCode canjea el código por el token de intake. Con un código
// incorrecto no se emite token alguno.
// POST /api/intake/otp/verify
func (h *IntakeHandler) VerifyCode(c *fiber.Ctx) error {
	var req dto.OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "email y código son obligatorios",
		})
	}
	token, err := h.gate.VerifyCode(c.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "INVALID_OTP", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("verificación de código de intake falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "IDENTITY_UNAVAILABLE", Message: "el proveedor de identidad no respondió",
		})
	}
	return c.JSON(dto.IntakeVerifyResponse{Email: req.Email, IntakeToken: token})
}
