package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
)

func TestParseStatus_ValoresValidos(t *testing.T) {
	cases := map[string]entity.Status{
		"pendiente":  entity.StatusPendiente,
		"en_proceso": entity.StatusEnProceso,
		"finalizado": entity.StatusFinal,
	}
	for in, want := range cases {
		got, err := entity.ParseStatus(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseStatus_ValorInvalido(t *testing.T) {
	for _, s := range []string{"", "archivado", "PENDIENTE", "en proceso"} {
		_, err := entity.ParseStatus(s)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, "el estado %q no debe parsear", s)
	}
}
