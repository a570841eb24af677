package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/html2url/internal/dto"
	"github.com/noah-isme/html2url/internal/service"
	"github.com/noah-isme/html2url/pkg/response"
)

const (
	serviceName    = "html2url"
	serviceVersion = "1.3.0"
)

type statsProvider interface {
	Snapshot(now time.Time) (*dto.StatsResponse, error)
}

// SystemConfig feeds the static metadata surfaces.
type SystemConfig struct {
	BaseURL        string
	MaxFileAge     time.Duration
	MaxContentSize int64
	APIKeyRequired bool
	PDFEnabled     bool
}

// SystemHandler serves health, stats and the index metadata.
type SystemHandler struct {
	stats    statsProvider
	renderer service.Renderer
	cfg      SystemConfig
}

// NewSystemHandler constructs the handler. renderer may be nil when PDF
// rendering is disabled.
func NewSystemHandler(stats statsProvider, renderer service.Renderer, cfg SystemConfig) *SystemHandler {
	return &SystemHandler{stats: stats, renderer: renderer, cfg: cfg}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:     "healthy",
		PDFEnabled: h.cfg.PDFEnabled,
	}
	if h.cfg.PDFEnabled {
		connected := h.renderer != nil && h.renderer.Healthy(c.Request.Context())
		resp.GotenbergConnected = &connected
	}
	response.JSON(c, http.StatusOK, resp)
}

// Stats godoc
// @Summary Store statistics
// @Tags System
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /stats [get]
func (h *SystemHandler) Stats(c *gin.Context) {
	snapshot, err := h.stats.Snapshot(time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot)
}

// Index godoc
// @Summary Service metadata
// @Tags System
// @Produce json
// @Success 200 {object} dto.IndexResponse
// @Router / [get]
func (h *SystemHandler) Index(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.IndexResponse{
		Service: serviceName,
		Version: serviceVersion,
		Docs:    h.cfg.BaseURL + "/docs/index.html",
		Endpoints: map[string]string{
			"POST /upload":         "Upload HTML content (body: raw HTML) -> HTML + PDF",
			"GET /files/{id}.html": "Fetch stored HTML",
			"GET /files/{id}.pdf":  "Fetch rendered PDF",
			"GET /health":          "Health check",
			"GET /stats":           "Store statistics",
			"GET /docs/index.html": "Swagger UI",
		},
		Config: dto.IndexConfig{
			MaxFileSizeMB:  float64(h.cfg.MaxContentSize) / 1024 / 1024,
			MaxAgeHours:    h.cfg.MaxFileAge.Hours(),
			APIKeyRequired: h.cfg.APIKeyRequired,
			PDFEnabled:     h.cfg.PDFEnabled,
		},
	})
}
