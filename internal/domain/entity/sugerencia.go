package entity

import (
	"time"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
)

// Status es la enumeración cerrada de estados de una sugerencia.
// El grafo de transición es completamente conexo: cualquier estado es
// alcanzable desde cualquier otro (un reporte finalizado puede reabrirse).
type Status string

// Estados válidos. El estado inicial es siempre StatusPendiente.
const (
	StatusPendiente Status = "pendiente"
	StatusEnProceso Status = "en_proceso"
	StatusFinal     Status = "finalizado"
)

var validStatuses = map[Status]bool{
	StatusPendiente: true,
	StatusEnProceso: true,
	StatusFinal:     true,
}

// ParseStatus valida y convierte un string a Status. Es total: cualquier
// valor fuera de la enumeración retorna ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", domain.ErrInvalidStatus
	}
	return st, nil
}

// Valid indica si el estado pertenece a la enumeración.
func (s Status) Valid() bool { return validStatuses[s] }

// Límites de adjuntos por sugerencia.
const (
	MaxImages    = 5
	MaxImageSize = 5 * 1024 * 1024 // 5MB por imagen
)

// Sugerencia es el reporte enviado por un vecino verificado. Los campos del
// reportante se escriben una sola vez en la creación; después solo Status es
// mutable, y únicamente por usuarios con capacidad de gestión.
type Sugerencia struct {
	ID          string
	Nombre      string
	Apellido    string
	Email       string
	Zona        string
	AreaID      *string // FK nullable hacia Area
	AreaName    string  // nombre del área resuelto por join, "" si no resuelve
	Descripcion string
	Images      []string // 0..5 URLs públicas, en orden de carga
	Status      Status
	CreatedAt   time.Time
}
