// Package identity implementa el gateway hacia el proveedor externo de
// identidad sobre su API REST (estilo GoTrue): emisión y validación de
// sesiones, códigos de un solo uso, intercambio de authorization codes y
// operaciones administrativas con service key.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/ports"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/auth"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/config"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/logger"
)

var _ ports.IdentityGateway = (*Client)(nil)

// Client es el adaptador HTTP del proveedor de identidad.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	http       *http.Client
	log        *logger.Logger
}

// New construye el cliente. No valida credenciales: su ausencia se reporta
// como advertencia en el arranque y las llamadas que las necesiten fallarán.
func New(cfg config.IdentityConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
		http:       &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// sessionPayload es la forma de sesión que devuelve el proveedor.
type sessionPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID               string `json:"id"`
		Email            string `json:"email"`
		EmailConfirmedAt string `json:"email_confirmed_at"`
	} `json:"user"`
}

func (p sessionPayload) toSession() auth.Session {
	return auth.Session{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresAt:    time.Now().Add(time.Duration(p.ExpiresIn) * time.Second),
		User: auth.Identity{
			ID:             p.User.ID,
			Email:          p.User.Email,
			EmailConfirmed: p.User.EmailConfirmedAt != "",
		},
	}
}

// providerError es el cuerpo de error del proveedor; los campos varían según
// la versión del backend, por eso se aceptan todas las variantes conocidas.
type providerError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e providerError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return "error desconocido del proveedor"
}

// SignInWithPassword autentica con email y contraseña.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (auth.Session, error) {
	var out sessionPayload
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.anonKey, "",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		if isInvalidCredentials(err) {
			return auth.Session{}, domain.ErrInvalidCredentials
		}
		return auth.Session{}, err
	}
	return out.toSession(), nil
}

// SendOTP dispara el envío del código de un solo uso al email.
func (c *Client) SendOTP(ctx context.Context, email string, allowNewIdentity bool) error {
	err := c.do(ctx, http.MethodPost, "/auth/v1/otp", c.anonKey, "",
		map[string]any{"email": email, "create_user": allowNewIdentity}, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSendFailure, err)
	}
	return nil
}

// VerifyOTP canjea el código de un solo uso por una sesión.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (auth.Session, error) {
	var out sessionPayload
	err := c.do(ctx, http.MethodPost, "/auth/v1/verify", c.anonKey, "",
		map[string]string{"type": "email", "email": email, "token": code}, &out)
	if err != nil {
		if isInvalidOTP(err) {
			return auth.Session{}, domain.ErrInvalidOTP
		}
		return auth.Session{}, err
	}
	return out.toSession(), nil
}

// ExchangeCode completa un login por redirect canjeando el authorization code.
func (c *Client) ExchangeCode(ctx context.Context, code string) (auth.Session, error) {
	var out sessionPayload
	err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=authorization_code", c.anonKey, "",
		map[string]string{"auth_code": code}, &out)
	if err != nil {
		return auth.Session{}, err
	}
	return out.toSession(), nil
}

// UpdatePassword actualiza la contraseña de la sesión activa.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	if accessToken == "" {
		return domain.ErrNotAuthenticated
	}
	err := c.do(ctx, http.MethodPut, "/auth/v1/user", c.anonKey, accessToken,
		map[string]string{"password": newPassword}, nil)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "password") {
			return domain.ErrWeakPassword
		}
		return err
	}
	return nil
}

// SignOut invalida la sesión en el proveedor.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", c.anonKey, accessToken, nil, nil)
}

// GetUser valida el access token y devuelve la identidad asociada.
func (c *Client) GetUser(ctx context.Context, accessToken string) (auth.Identity, error) {
	if accessToken == "" {
		return auth.Identity{}, domain.ErrNotAuthenticated
	}
	var out struct {
		ID               string `json:"id"`
		Email            string `json:"email"`
		EmailConfirmedAt string `json:"email_confirmed_at"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.anonKey, accessToken, nil, &out)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{ID: out.ID, Email: out.Email, EmailConfirmed: out.EmailConfirmedAt != ""}, nil
}

// InviteByEmail aprovisiona una identidad y envía el correo de invitación
// con el redirect de vuelta a la app. Requiere service key.
func (c *Client) InviteByEmail(ctx context.Context, email, redirectTo string) (auth.Identity, error) {
	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	path := "/auth/v1/invite"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	err := c.do(ctx, http.MethodPost, path, c.serviceKey, "",
		map[string]string{"email": email}, &out)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %s", domain.ErrSendFailure, err)
	}
	return auth.Identity{ID: out.ID, Email: out.Email}, nil
}

// SendRecovery envía el correo de restablecimiento de contraseña. Se dispara
// incondicionalmente: no se expone si el email existe o no.
func (c *Client) SendRecovery(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	err := c.do(ctx, http.MethodPost, path, c.serviceKey, "",
		map[string]string{"email": email}, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSendFailure, err)
	}
	return nil
}

// DeleteIdentity elimina una identidad. Requiere service key.
func (c *Client) DeleteIdentity(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(id), c.serviceKey, "", nil, nil)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// do ejecuta una llamada al proveedor. apiKey va en el header apikey; si
// bearer no está vacío se usa como Authorization, si no se usa la apiKey.
func (c *Client) do(ctx context.Context, method, path, apiKey, bearer string, body, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("identity: proveedor no configurado")
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identity: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("identity: crear request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("identity: leer respuesta: %w", err)
	}

	if resp.StatusCode >= 400 {
		var pe providerError
		_ = json.Unmarshal(data, &pe)
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("msg", pe.text()).
			Msg("respuesta de error del proveedor de identidad")
		return &apiError{status: resp.StatusCode, msg: pe.text()}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("identity: decodificar respuesta: %w", err)
		}
	}
	return nil
}

// apiError conserva el status y el mensaje crudo del proveedor para que las
// normalizaciones puedan inspeccionarlos.
type apiError struct {
	status int
	msg    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("identity: %s (status %d)", e.msg, e.status)
}

func isInvalidCredentials(err error) bool {
	ae, ok := err.(*apiError)
	if !ok {
		return false
	}
	m := strings.ToLower(ae.msg)
	return strings.Contains(m, "invalid login credentials") ||
		strings.Contains(m, "invalid grant")
}

func isInvalidOTP(err error) bool {
	ae, ok := err.(*apiError)
	if !ok {
		return false
	}
	m := strings.ToLower(ae.msg)
	return strings.Contains(m, "token has expired") ||
		strings.Contains(m, "invalid token") ||
		strings.Contains(m, "otp")
}

func isNotFound(err error) bool {
	ae, ok := err.(*apiError)
	return ok && ae.status == http.StatusNotFound
}
