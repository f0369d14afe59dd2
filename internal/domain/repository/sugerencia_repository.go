package repository

import (
	"context"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
)

// SugerenciaRepository define el puerto de persistencia para Sugerencia.
// List resuelve el nombre del área vía join cuando el esquema lo permite;
// la implementación debe degradar a la forma sin join si el join falla
// (tolerancia a migraciones de esquema).
type SugerenciaRepository interface {
	Create(ctx context.Context, s *entity.Sugerencia) error
	GetByID(ctx context.Context, id string) (*entity.Sugerencia, error)
	List(ctx context.Context) ([]*entity.Sugerencia, error)
	UpdateStatus(ctx context.Context, id string, status entity.Status) error
	Delete(ctx context.Context, id string) error
}
