// Package redis implementa el store de sesiones activas sobre Redis, con
// TTL atado al vencimiento del access token.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/session"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/config"
)

var _ session.Store = (*SessionStore)(nil)

// SessionStore almacena sesiones serializadas en Redis bajo el prefijo
// "session:<access_token>".
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore construye el store sobre un cliente Redis existente.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, prefix: "session:"}
}

// NewClient crea el cliente Redis desde configuración.
func NewClient(cfg config.RedisConfig) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Save guarda la sesión con TTL hasta su vencimiento. Una sesión ya vencida
// no se guarda.
func (s *SessionStore) Save(ctx context.Context, sess auth.Session) error {
	if sess.AccessToken == "" {
		return session.ErrNoSession
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return session.ErrNoSession
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis: serializar sesión: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sess.AccessToken, data, ttl).Err()
}

// Get devuelve la sesión del token, o session.ErrNoSession si no existe.
func (s *SessionStore) Get(ctx context.Context, accessToken string) (auth.Session, error) {
	if accessToken == "" {
		return auth.Session{}, session.ErrNoSession
	}
	data, err := s.client.Get(ctx, s.prefix+accessToken).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.Session{}, session.ErrNoSession
		}
		return auth.Session{}, fmt.Errorf("redis: get sesión: %w", err)
	}
	var sess auth.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return auth.Session{}, fmt.Errorf("redis: deserializar sesión: %w", err)
	}
	// El TTL de Redis debería bastar, pero se revalida el vencimiento
	if sess.Expired() {
		_ = s.client.Del(ctx, s.prefix+accessToken).Err()
		return auth.Session{}, session.ErrNoSession
	}
	return sess, nil
}

// Delete elimina la sesión del token.
func (s *SessionStore) Delete(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+accessToken).Err()
}

// MarkRecovery marca la sesión como de recuperación conservando su TTL.
func (s *SessionStore) MarkRecovery(ctx context.Context, accessToken string) error {
	sess, err := s.Get(ctx, accessToken)
	if err != nil {
		return err
	}
	sess.Recovery = true
	return s.Save(ctx, sess)
}
