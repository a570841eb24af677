package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/html2url/internal/dto"
	appErrors "github.com/noah-isme/html2url/pkg/errors"
	"github.com/noah-isme/html2url/pkg/response"
)

type uploadService interface {
	Create(ctx context.Context, html []byte) (*dto.UploadResponse, error)
	TooLargeError() error
	MaxContentLength() int64
}

// UploadHandler accepts raw HTML payloads.
type UploadHandler struct {
	service uploadService
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(service uploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload godoc
// @Summary Upload HTML content
// @Tags Upload
// @Accept html
// @Produce json
// @Param body body string true "Raw HTML to store"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 413 {object} response.ErrorBody
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	limit := h.service.MaxContentLength()

	// Reject on the declared length before reading anything.
	if c.Request.ContentLength > limit {
		response.Error(c, h.service.TooLargeError())
		return
	}

	// Read one byte past the limit so an undeclared oversized body is still
	// caught by the service's actual-length check.
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "failed to read request body"))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
