package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
)

func testSession(token string) auth.Session {
	return auth.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        auth.Identity{ID: "id-1", Email: "admin@example.com"},
	}
}

func TestMemoryStore_GuardarYObtener(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Save(ctx, testSession("tok-1")))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.User.Email)
}

func TestMemoryStore_TokenInexistente(t *testing.T) {
	store := session.NewMemoryStore()
	_, err := store.Get(context.Background(), "nadie")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

// Una sesión vencida se comporta como ausente y se purga al leerla.
func TestMemoryStore_SesionVencida(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	s := testSession("tok-1")
	s.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(ctx, s))

	_, err := store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestMemoryStore_Eliminar(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Save(ctx, testSession("tok-1")))
	require.NoError(t, store.Delete(ctx, "tok-1"))

	_, err := store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestMemoryStore_MarcarRecuperacion(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Save(ctx, testSession("tok-1")))
	require.NoError(t, store.MarkRecovery(ctx, "tok-1"))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, got.Recovery)
}
