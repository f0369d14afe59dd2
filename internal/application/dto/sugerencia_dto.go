package dto

import "time"

// SubmitSugerenciaRequest campos de formulario del envío público
// (multipart; las imágenes van como archivos adjuntos).
type SubmitSugerenciaRequest struct {
	Nombre      string `form:"nombre" validate:"required,max=120"`
	Apellido    string `form:"apellido" validate:"required,max=120"`
	Zona        string `form:"zona" validate:"required,max=200"`
	AreaID      string `form:"area_id" validate:"omitempty,uuid"`
	Descripcion string `form:"descripcion" validate:"required"`
}

// SubmitSugerenciaResponse salida del envío: id creado y advertencias de
// validación de imágenes (archivos rechazados individualmente).
type SubmitSugerenciaResponse struct {
	ID       string   `json:"id"`
	Images   []string `json:"images"`
	Warnings []string `json:"warnings,omitempty"`
}

// UpdateStatusRequest entrada para la transición de estado.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pendiente en_proceso finalizado"`
}

// SugerenciaResponse salida de una sugerencia.
type SugerenciaResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Apellido    string    `json:"apellido"`
	Email       string    `json:"email"`
	Zona        string    `json:"zona"`
	AreaID      *string   `json:"area_id"`
	AreaName    string    `json:"area_name,omitempty"`
	Descripcion string    `json:"descripcion"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
