package repository

import (
	"context"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
)

// AreaRepository define el puerto de persistencia para Area.
type AreaRepository interface {
	Create(ctx context.Context, a *entity.Area) error
	List(ctx context.Context) ([]*entity.Area, error)
	Delete(ctx context.Context, id string) error
}
