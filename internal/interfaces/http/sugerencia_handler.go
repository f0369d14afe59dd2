package http

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/dto"
	"github.com/aportes-sugerencias/sugerencias-api/internal/application/suggestions"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

// IntakeTokenHeader transporta el token del gate público en el envío.
const IntakeTokenHeader = "X-Intake-Token"

// intakeVerifier valida el token del gate y devuelve el email atado.
type intakeVerifier interface {
	VerifiedEmail(token string) (string, error)
}

// SugerenciaHandler expone el envío público y la gestión de sugerencias.
type SugerenciaHandler struct {
	uc     *suggestions.UseCase
	intake intakeVerifier
	log    *logger.Logger
}

// NewSugerenciaHandler construye el handler de sugerencias.
func NewSugerenciaHandler(uc *suggestions.UseCase, intake intakeVerifier, log *logger.Logger) *SugerenciaHandler {
	return &SugerenciaHandler{uc: uc, intake: intake, log: log}
}

func toSugerenciaResponse(s *entity.Sugerencia) dto.SugerenciaResponse {
	images := s.Images
	if images == nil {
		images = []string{}
	}
	return dto.SugerenciaResponse{
		ID:          s.ID,
		Nombre:      s.Nombre,
		Apellido:    s.Apellido,
		Email:       s.Email,
		Zona:        s.Zona,
		AreaID:      s.AreaID,
		AreaName:    s.AreaName,
		Descripcion: s.Descripcion,
		Images:      images,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}

// Submit recibe el formulario público multipart. El token de intake viene en
// el header o en el campo intake_token; el email del reportante sale del
// token, nunca del formulario.
// POST /api/sugerencias
func (h *SugerenciaHandler) Submit(c *fiber.Ctx) error {
	token := c.Get(IntakeTokenHeader)
	if token == "" {
		token = c.FormValue("intake_token")
	}
	email, err := h.intake.VerifiedEmail(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "INTAKE_REQUIRED", Message: "verificá tu email antes de enviar",
		})
	}

	req := dto.SubmitSugerenciaRequest{
		Nombre:      c.FormValue("nombre"),
		Apellido:    c.FormValue("apellido"),
		Zona:        c.FormValue("zona"),
		AreaID:      c.FormValue("area_id"),
		Descripcion: c.FormValue("descripcion"),
	}

	files, err := h.readImages(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_UPLOAD", Message: "no se pudieron leer los adjuntos",
		})
	}

	s, warnings, err := h.uc.Submit(c.Context(), email, req, files)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_INPUT", Message: "nombre, apellido, zona y descripción son obligatorios",
			})
		}
		h.log.Error().Err(err).Msg("envío de sugerencia falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "SUBMIT_FAILED", Message: "no se pudo registrar la sugerencia",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitSugerenciaResponse{
		ID:       s.ID,
		Images:   s.Images,
		Warnings: warnings,
	})
}

// readImages levanta los archivos del campo multipart "images".
func (h *SugerenciaHandler) readImages(c *fiber.Ctx) ([]suggestions.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// envío sin adjuntos: el formulario puede no ser multipart
		return nil, nil
	}
	var uploads []suggestions.ImageUpload
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, suggestions.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        data,
		})
	}
	return uploads, nil
}

// List devuelve todas las sugerencias, más recientes primero.
// GET /api/admin/sugerencias
func (h *SugerenciaHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("listar sugerencias falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "LIST_FAILED", Message: "no se pudieron obtener las sugerencias",
		})
	}
	out := make([]dto.SugerenciaResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSugerenciaResponse(s))
	}
	return c.JSON(out)
}

// Get devuelve el detalle de una sugerencia.
// GET /api/admin/sugerencias/:id
func (h *SugerenciaHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSuggestionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("obtener sugerencia falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "GET_FAILED", Message: "no se pudo obtener la sugerencia",
		})
	}
	return c.JSON(toSugerenciaResponse(s))
}

// UpdateStatus aplica la transición de estado y devuelve el registro
// actualizado, única fuente para sincronizar lista y detalle.
// PATCH /api/admin/sugerencias/:id/status
func (h *SugerenciaHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	status, err := entity.ParseStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_STATUS", Message: "estado inválido: " + req.Status,
		})
	}
	s, err := h.uc.Transition(c.Context(), c.Params("id"), status)
	if err != nil {
		if errors.Is(err, domain.ErrSuggestionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("transición de estado falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "UPDATE_FAILED", Message: "no se pudo actualizar el estado",
		})
	}
	return c.JSON(toSugerenciaResponse(s))
}

// Delete elimina la sugerencia.
// DELETE /api/admin/sugerencias/:id
func (h *SugerenciaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrSuggestionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("borrar sugerencia falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "DELETE_FAILED", Message: "no se pudo eliminar la sugerencia",
		})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "sugerencia eliminada"})
}

// ExportPDF descarga el reporte en PDF de la sugerencia.
// GET /api/admin/sugerencias/:id/pdf
func (h *SugerenciaHandler) ExportPDF(c *fiber.Ctx) error {
	filename, doc, err := h.uc.ExportPDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSuggestionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("exportar PDF falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "EXPORT_FAILED", Message: "no se pudo generar el PDF",
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
