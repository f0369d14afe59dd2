package session

import (
	"context"
	"sync"

	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
)

// ErrNoSession se devuelve cuando no hay sesión activa para el token.
type noSessionError struct{}

func (noSessionError) Error() string { return "sesión no encontrada" }

// ErrNoSession sentinel para sesión ausente o vencida.
var ErrNoSession error = noSessionError{}

// Store es el puerto del cache de sesiones activas, indexado por access
// token. La implementación de producción vive en infrastructure/redis; la
// de memoria se usa en tests y cuando redis no está configurado.
type Store interface {
	Save(ctx context.Context, s auth.Session) error
	Get(ctx context.Context, accessToken string) (auth.Session, error)
	Delete(ctx context.Context, accessToken string) error
	// MarkRecovery marca la sesión con alcance de recuperación de contraseña.
	MarkRecovery(ctx context.Context, accessToken string) error
}

// MemoryStore implementación en memoria de Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore crea el store en memoria.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]auth.Session)}
}

// Save guarda la sesión indexada por access token.
func (m *MemoryStore) Save(_ context.Context, s auth.Session) error {
	if s.AccessToken == "" {
		return ErrNoSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.AccessToken] = s
	return nil
}

// Get devuelve la sesión del token, o ErrNoSession si no existe o venció.
func (m *MemoryStore) Get(_ context.Context, accessToken string) (auth.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[accessToken]
	m.mu.RUnlock()
	if !ok {
		return auth.Session{}, ErrNoSession
	}
	if s.Expired() {
		m.mu.Lock()
		delete(m.sessions, accessToken)
		m.mu.Unlock()
		return auth.Session{}, ErrNoSession
	}
	return s, nil
}

// Delete elimina la sesión del token; sin efecto si no existe.
func (m *MemoryStore) Delete(_ context.Context, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, accessToken)
	return nil
}

// MarkRecovery marca la sesión como de recuperación de contraseña.
func (m *MemoryStore) MarkRecovery(_ context.Context, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[accessToken]
	if !ok {
		return ErrNoSession
	}
	s.Recovery = true
	m.sessions[accessToken] = s
	return nil
}
