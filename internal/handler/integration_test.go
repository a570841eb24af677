package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/html2url/internal/dto"
	"github.com/noah-isme/html2url/internal/middleware"
	"github.com/noah-isme/html2url/internal/service"
	"github.com/noah-isme/html2url/pkg/storage"
)

type fakeRenderer struct {
	pdf []byte
	err error
}

func (f *fakeRenderer) Render(ctx context.Context, html []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func (f *fakeRenderer) Healthy(ctx context.Context) bool { return f.err == nil }

func newTestRouter(t *testing.T, renderer service.Renderer, pdfEnabled bool) (*gin.Engine, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	submissionSvc := service.NewSubmissionService(store, renderer, nil, nil, service.SubmissionConfig{
		BaseURL:          "http://localhost:8080",
		MaxContentLength: 1024,
		PDFEnabled:       pdfEnabled,
	})
	statsSvc := service.NewStatsService(store, service.StatsConfig{
		MaxFileAge:       24 * time.Hour,
		MaxContentLength: 1024,
		PDFEnabled:       pdfEnabled,
	})

	r := gin.New()
	r.POST("/upload", middleware.APIKey("", nil), NewUploadHandler(submissionSvc).Upload)
	r.GET("/files/:name", NewFilesHandler(store, FilesConfig{CSPPolicy: "default-src 'self';"}).Serve)
	sys := NewSystemHandler(statsSvc, renderer, SystemConfig{
		BaseURL:        "http://localhost:8080",
		MaxFileAge:     24 * time.Hour,
		MaxContentSize: 1024,
		PDFEnabled:     pdfEnabled,
	})
	r.GET("/stats", sys.Stats)
	r.GET("/health", sys.Health)
	r.GET("/", sys.Index)
	return r, store
}

func doRequest(r *gin.Engine, method, path string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestUploadThenFetchRoundtrip(t *testing.T) {
	r, _ := newTestRouter(t, &fakeRenderer{pdf: []byte("%PDF-1.4 fake")}, true)

	html := []byte("<!DOCTYPE html><html><body><h1>hello</h1></body></html>")
	w := doRequest(r, http.MethodPost, "/upload", html, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var up dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &up))
	require.True(t, up.Success)
	require.Len(t, up.ID, 12)
	require.Equal(t, "http://localhost:8080/files/"+up.Filename, up.URL)
	require.NotNil(t, up.PDFGenerated)
	require.True(t, *up.PDFGenerated)
	require.NotNil(t, up.PDFFilename)

	// HTML comes back byte-identical.
	got := doRequest(r, http.MethodGet, "/files/"+up.Filename, nil, nil)
	require.Equal(t, http.StatusOK, got.Code)
	require.Equal(t, html, got.Body.Bytes())

	// Conditional fetch: identical ETags, then a 304 without a body.
	etag := got.Header().Get("ETag")
	require.NotEmpty(t, etag)
	again := doRequest(r, http.MethodGet, "/files/"+up.Filename, nil, nil)
	require.Equal(t, etag, again.Header().Get("ETag"))
	cached := doRequest(r, http.MethodGet, "/files/"+up.Filename, nil, map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, cached.Code)
	require.Empty(t, cached.Body.Bytes())

	// The PDF rendition is served too.
	pdf := doRequest(r, http.MethodGet, "/files/"+*up.PDFFilename, nil, nil)
	require.Equal(t, http.StatusOK, pdf.Code)
	require.Equal(t, []byte("%PDF-1.4 fake"), pdf.Body.Bytes())
}

func TestUploadRendererUnreachableDegrades(t *testing.T) {
	r, _ := newTestRouter(t, &fakeRenderer{err: errors.New("connection refused")}, true)

	w := doRequest(r, http.MethodPost, "/upload", []byte("<html></html>"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var up dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &up))
	require.True(t, up.Success)
	require.NotNil(t, up.PDFGenerated)
	require.False(t, *up.PDFGenerated)
	require.Nil(t, up.PDFURL)
}

func TestUploadPDFDisabledOmitsFields(t *testing.T) {
	r, _ := newTestRouter(t, nil, false)

	w := doRequest(r, http.MethodPost, "/upload", []byte("<html></html>"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "pdf_url")
	require.NotContains(t, w.Body.String(), "pdf_generated")
}

func TestUploadEmptyBodyCreatesNothing(t *testing.T) {
	r, store := newTestRouter(t, nil, false)

	w := doRequest(r, http.MethodPost, "/upload", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	artifacts, err := store.List()
	require.NoError(t, err)
	require.Empty(t, artifacts)
}

func TestUploadOversizedBody(t *testing.T) {
	r, store := newTestRouter(t, nil, false)

	big := bytes.Repeat([]byte("a"), 2048)
	w := doRequest(r, http.MethodPost, "/upload", big, nil)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	artifacts, err := store.List()
	require.NoError(t, err)
	require.Empty(t, artifacts)
}

func TestStatsReflectsStore(t *testing.T) {
	r, store := newTestRouter(t, &fakeRenderer{pdf: []byte("%PDF")}, true)

	for i := 0; i < 3; i++ {
		w := doRequest(r, http.MethodPost, "/upload", []byte("<html></html>"), nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(r, http.MethodGet, "/stats", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats dto.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, 6, stats.TotalFiles)
	require.Equal(t, 3, stats.HTMLFiles)
	require.Equal(t, 3, stats.PDFFiles)
	require.Equal(t, stats.TotalFiles, stats.HTMLFiles+stats.PDFFiles)

	artifacts, err := store.List()
	require.NoError(t, err)
	var total int64
	for _, a := range artifacts {
		total += a.SizeBytes
	}
	require.InDelta(t, float64(total)/1024/1024, stats.TotalSizeMB, 0.01)
}

func TestSweepEvictsUploadedArtifacts(t *testing.T) {
	r, store := newTestRouter(t, nil, false)

	w := doRequest(r, http.MethodPost, "/upload", []byte("<html></html>"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var up dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &up))

	retention := service.NewRetention(store, nil, nil, service.RetentionConfig{
		MaxFileAge:      24 * time.Hour,
		CleanupInterval: time.Hour,
	})
	require.Equal(t, 1, retention.Sweep(time.Now().Add(25*time.Hour)))

	got := doRequest(r, http.MethodGet, "/files/"+up.Filename, nil, nil)
	require.Equal(t, http.StatusNotFound, got.Code)
}
