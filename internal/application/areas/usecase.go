// Package areas gestiona la taxonomía de áreas (solo superadmin para
// crear/borrar; el listado es público porque lo consume el formulario de
// envío).
package areas

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/repository"
)

// UseCase casos de uso de áreas.
type UseCase struct {
	repo repository.AreaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AreaRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crea un área con nombre no vacío.
func (uc *UseCase) Create(ctx context.Context, name string) (*entity.Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	a := &entity.Area{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List devuelve las áreas ordenadas por nombre.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Area, error) {
	return uc.repo.List(ctx)
}

// Delete elimina el área. No hay cascada: las sugerencias que la referencian
// conservan el area_id colgante, que resuelve a null en el join.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
