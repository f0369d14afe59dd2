package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/areas"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// AreaHandler expone la taxonomía de áreas. El listado es público (lo
// consume el formulario de envío); crear y borrar exigen superadmin.
type AreaHandler struct {
	uc  *areas.UseCase
	log *logger.Logger
}

// NewAreaHandler construye el handler de áreas.
func NewAreaHandler(uc *areas.UseCase, log *logger.Logger) *AreaHandler {
	return &AreaHandler{uc: uc, log: log}
}

// List devuelve las áreas ordenadas por nombre.
// GET /api/areas
func (h *AreaHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("listar áreas falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "LIST_FAILED", Message: "no se pudieron obtener las áreas",
		})
	}
	out := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AreaResponse{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt})
	}
	return c.JSON(out)
}

// Create crea un área nueva.
// POST /api/admin/areas
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	a, err := h.uc.Create(c.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_INPUT", Message: "el nombre del área es obligatorio",
			})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE", Message: "ya existe un área con ese nombre",
			})
		}
		h.log.Error().Err(err).Msg("crear área falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "CREATE_FAILED", Message: "no se pudo crear el área",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AreaResponse{
		ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt,
	})
}

// Delete elimina un área. Las sugerencias que la referencian quedan con el
// área sin resolver.
// DELETE /api/admin/areas/:id
func (h *AreaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "área no encontrada",
			})
		}
		h.log.Error().Err(err).Msg("borrar área falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "DELETE_FAILED", Message: "no se pudo eliminar el área",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "área eliminada"})
}
