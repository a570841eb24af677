package handler

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/html2url/internal/models"
	appErrors "github.com/noah-isme/html2url/pkg/errors"
	"github.com/noah-isme/html2url/pkg/response"
	"github.com/noah-isme/html2url/pkg/storage"
)

type fileStore interface {
	Get(name string) ([]byte, error)
}

// FilesConfig controls caching and hardening headers on served artifacts.
type FilesConfig struct {
	CSPPolicy   string
	CacheMaxAge time.Duration
}

// FilesHandler serves stored artifacts with conditional-GET semantics.
type FilesHandler struct {
	store fileStore
	cfg   FilesConfig
}

// NewFilesHandler constructs the handler.
func NewFilesHandler(store fileStore, cfg FilesConfig) *FilesHandler {
	if cfg.CacheMaxAge <= 0 {
		cfg.CacheMaxAge = time.Hour
	}
	return &FilesHandler{store: store, cfg: cfg}
}

// Serve godoc
// @Summary Fetch a stored HTML or PDF artifact
// @Tags Files
// @Produce html
// @Param name path string true "Artifact filename, e.g. a3f2c1b9e4d7.html"
// @Success 200 {string} string "Artifact content"
// @Success 304 "Not modified"
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /files/{name} [get]
func (h *FilesHandler) Serve(c *gin.Context) {
	name := c.Param("name")

	// Validated before any filesystem access; this is the only traversal
	// defense.
	kind, ok := storage.ValidName(name)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid filename"))
		return
	}

	data, err := h.store.Get(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.Error(c, appErrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}

	sum := md5.Sum(data)
	etag := hex.EncodeToString(sum[:])

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("ETag", etag)
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cfg.CacheMaxAge.Seconds())))
	c.Header("X-Content-Type-Options", "nosniff")

	// Hosted HTML is untrusted attacker-controlled content; lock it down.
	// PDFs are displayed inline under their stored name instead.
	switch kind {
	case models.KindHTML:
		c.Header("Content-Security-Policy", h.cfg.CSPPolicy)
		c.Header("X-Frame-Options", "SAMEORIGIN")
	case models.KindPDF:
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	}

	c.Data(http.StatusOK, kind.MIME(), data)
}
