package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/directory"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// UsuarioHandler expone el directorio de usuarios del panel.
type UsuarioHandler struct {
	dir *directory.Manager
	log *logger.Logger
}

// NewUsuarioHandler construye el handler de usuarios.
func NewUsuarioHandler(dir *directory.Manager, log *logger.Logger) *UsuarioHandler {
	return &UsuarioHandler{dir: dir, log: log}
}

// List devuelve los perfiles del panel.
// GET /api/admin/usuarios
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	profiles, err := h.dir.List(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("listar usuarios falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "LIST_FAILED", Message: "no se pudieron obtener los usuarios",
		})
	}
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.ProfileResponse{
			ID:        p.ID,
			Email:     p.Email,
			Role:      string(p.Role),
			CreatedAt: p.CreatedAt,
		})
	}
	return c.JSON(out)
}

// Invite invita un usuario por email. El perfil se crea con rol viewer; si
// el perfil no se pudo crear, la invitación igual se reporta con
// profile_created en false.
// POST /api/admin/usuarios/invite
func (h *UsuarioHandler) Invite(c *fiber.Ctx) error {
	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "email es obligatorio",
		})
	}
	res, err := h.dir.Invite(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "ALREADY_REGISTERED", Message: "el email ya está registrado",
			})
		}
		h.log.Error().Err(err).Str("email", req.Email).Msg("invitación falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "INVITE_FAILED", Message: "no se pudo enviar la invitación",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InviteResponse{
		IdentityID:     res.IdentityID,
		ProfileCreated: res.ProfileCreated,
	})
}

// UpdateRole cambia el rol de un perfil.
// PATCH /api/admin/usuarios/:id/role
func (h *UsuarioHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_ROLE", Message: "rol inválido: " + req.Role,
		})
	}
	if err := h.dir.UpdateRole(c.Context(), c.Params("id"), role); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("cambio de rol falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "UPDATE_FAILED", Message: "no se pudo actualizar el rol",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "rol actualizado"})
}

// ResetPassword dispara el correo de restablecimiento. Responde igual exista
// o no el email.
// POST /api/admin/usuarios/reset-password
func (h *UsuarioHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "email es obligatorio",
		})
	}
	if err := h.dir.ResetPassword(c.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("restablecimiento de contraseña falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "SEND_FAILED", Message: "no se pudo enviar el correo",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "correo de restablecimiento enviado"})
}

// Delete elimina perfil e identidad, en ese orden. El resultado reportado es
// el del borrado de identidad.
// DELETE /api/admin/usuarios/:id
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.dir.DeleteUser(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "usuario no encontrado",
			})
		}
		h.log.Error().Err(err).Msg("eliminación de usuario falló")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "DELETE_FAILED", Message: "no se pudo eliminar el usuario",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "usuario eliminado"})
}
