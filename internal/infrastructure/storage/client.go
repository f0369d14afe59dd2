// Package storage implementa la subida de imágenes al almacenamiento de
// objetos del backend externo vía su API REST, y la descarga por URL pública
// para incrustarlas en el PDF.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/ports"
	"github.com/aportes-sugerencias/sugerencias-api/pkg/config"
)

var _ ports.ObjectStorage = (*Client)(nil)

// Client es el adaptador HTTP del almacenamiento de objetos.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

// New construye el cliente de storage. Comparte endpoint y anon key con el
// proveedor de identidad (mismo backend).
func New(identityCfg config.IdentityConfig, storageCfg config.StorageConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(identityCfg.URL, "/"),
		apiKey:  identityCfg.AnonKey,
		bucket:  storageCfg.Bucket,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sube un objeto al bucket y devuelve su URL pública.
func (c *Client) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("storage: backend no configurado")
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("storage: subir %s: status %d: %s", name, resp.StatusCode, string(body))
	}
	return c.PublicURL(name), nil
}

// PublicURL devuelve la URL públicamente resoluble de un objeto del bucket.
func (c *Client) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, name)
}

// Fetch descarga un objeto por su URL pública.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: crear request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage: descargar %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("storage: descargar %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
