package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Renderer converts HTML bytes into a PDF rendition. The concrete
// implementation talks to an external service; tests substitute a fake.
type Renderer interface {
	Render(ctx context.Context, html []byte) ([]byte, error)
	Healthy(ctx context.Context) bool
}

// GotenbergConfig wires the remote Chromium-based rendering service.
type GotenbergConfig struct {
	URL           string
	RenderTimeout time.Duration
	HealthTimeout time.Duration
}

// GotenbergRenderer renders HTML via Gotenberg's chromium conversion route.
type GotenbergRenderer struct {
	cfg          GotenbergConfig
	client       *http.Client
	healthClient *http.Client
	logger       *zap.Logger
}

// NewGotenbergRenderer constructs the renderer with bounded timeouts.
func NewGotenbergRenderer(cfg GotenbergConfig, logger *zap.Logger) *GotenbergRenderer {
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 30 * time.Second
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GotenbergRenderer{
		cfg:          cfg,
		client:       &http.Client{Timeout: cfg.RenderTimeout},
		healthClient: &http.Client{Timeout: cfg.HealthTimeout},
		logger:       logger,
	}
}

// Render posts the HTML as a multipart form to Gotenberg and returns the PDF
// bytes. One attempt only; any failure is reported to the caller who treats
// it as a degraded upload, not a request failure.
func (r *GotenbergRenderer) Render(ctx context.Context, html []byte) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	for field, value := range map[string]string{
		"marginTop":       "1",
		"marginBottom":    "1",
		"marginLeft":      "1",
		"marginRight":     "1",
		"printBackground": "true",
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("build multipart form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}

	url := r.cfg.URL + "/forms/chromium/convert/html"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("renderer returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rendered pdf: %w", err)
	}
	return pdf, nil
}

// Healthy probes the renderer's health endpoint with a short timeout.
func (r *GotenbergRenderer) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.URL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.healthClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close() //nolint:errcheck
	return resp.StatusCode == http.StatusOK
}
