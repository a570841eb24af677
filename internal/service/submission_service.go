package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/html2url/internal/dto"
	"github.com/noah-isme/html2url/internal/models"
	appErrors "github.com/noah-isme/html2url/pkg/errors"
)

type submissionStore interface {
	Put(id string, kind models.Kind, data []byte) error
	UniqueID() string
}

// SubmissionConfig bounds uploads and shapes the generated links.
type SubmissionConfig struct {
	BaseURL          string
	MaxContentLength int64
	PDFEnabled       bool
}

// SubmissionService orchestrates one upload: validate, allocate an id,
// persist the HTML, and attempt the optional PDF rendition.
type SubmissionService struct {
	store    submissionStore
	renderer Renderer
	metrics  *MetricsService
	logger   *zap.Logger
	cfg      SubmissionConfig
}

// NewSubmissionService constructs the service. renderer may be nil when PDF
// rendering is disabled.
func NewSubmissionService(store submissionStore, renderer Renderer, metrics *MetricsService, logger *zap.Logger, cfg SubmissionConfig) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = 1 * 1024 * 1024
	}
	return &SubmissionService{
		store:    store,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// Create stores the HTML payload and returns the submission response. A
// failed render degrades the submission to HTML-only; a failed HTML write
// fails the whole upload because it is real data loss.
func (s *SubmissionService) Create(ctx context.Context, html []byte) (*dto.UploadResponse, error) {
	if len(html) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no HTML content found in request body")
	}
	if int64(len(html)) > s.cfg.MaxContentLength {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, s.tooLargeMessage())
	}

	id := s.store.UniqueID()
	htmlName := id + models.KindHTML.Ext()

	if err := s.store.Put(id, models.KindHTML, html); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreIO.Code, appErrors.ErrStoreIO.Status, appErrors.ErrStoreIO.Message)
	}
	s.metrics.RecordUpload()
	s.metrics.RecordStored(string(models.KindHTML))
	s.logger.Info("html stored", zap.String("filename", htmlName), zap.Int("size_bytes", len(html)))

	resp := &dto.UploadResponse{
		Success:  true,
		ID:       id,
		Filename: htmlName,
		URL:      s.fileURL(htmlName),
	}

	if !s.cfg.PDFEnabled {
		return resp, nil
	}

	generated := s.renderPDF(ctx, id, html)
	resp.PDFGenerated = &generated
	if generated {
		pdfName := id + models.KindPDF.Ext()
		pdfURL := s.fileURL(pdfName)
		resp.PDFFilename = &pdfName
		resp.PDFURL = &pdfURL
	}
	return resp, nil
}

// renderPDF performs the single render attempt and stores the result.
// Failures are logged and reported through the return value only.
func (s *SubmissionService) renderPDF(ctx context.Context, id string, html []byte) bool {
	if s.renderer == nil {
		return false
	}
	start := time.Now()
	pdf, err := s.renderer.Render(ctx, html)
	s.metrics.RecordRender(err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("pdf rendering failed", zap.String("id", id), zap.Error(err))
		return false
	}
	if err := s.store.Put(id, models.KindPDF, pdf); err != nil {
		s.logger.Warn("pdf store failed", zap.String("id", id), zap.Error(err))
		return false
	}
	s.metrics.RecordStored(string(models.KindPDF))
	s.logger.Info("pdf stored", zap.String("filename", id+models.KindPDF.Ext()), zap.Int("size_bytes", len(pdf)))
	return true
}

func (s *SubmissionService) fileURL(name string) string {
	return fmt.Sprintf("%s/files/%s", s.cfg.BaseURL, name)
}

func (s *SubmissionService) tooLargeMessage() string {
	return fmt.Sprintf("file too large. maximum: %.1fMB", float64(s.cfg.MaxContentLength)/1024/1024)
}

// TooLargeError is used by the HTTP layer when the declared content length
// already exceeds the limit, before reading the body.
func (s *SubmissionService) TooLargeError() error {
	return appErrors.Clone(appErrors.ErrPayloadTooLarge, s.tooLargeMessage())
}

// MaxContentLength exposes the configured ceiling for the HTTP layer.
func (s *SubmissionService) MaxContentLength() int64 {
	return s.cfg.MaxContentLength
}
