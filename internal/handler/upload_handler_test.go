package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/html2url/internal/dto"
	appErrors "github.com/noah-isme/html2url/pkg/errors"
)

type uploadServiceMock struct {
	resp    *dto.UploadResponse
	err     error
	maxLen  int64
	gotHTML []byte
	called  bool
}

func (m *uploadServiceMock) Create(ctx context.Context, html []byte) (*dto.UploadResponse, error) {
	m.called = true
	m.gotHTML = html
	if m.err != nil {
		return nil, m.err
	}
	if int64(len(html)) > m.maxLen {
		return nil, appErrors.ErrPayloadTooLarge
	}
	if len(html) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no HTML content found in request body")
	}
	return m.resp, nil
}

func (m *uploadServiceMock) TooLargeError() error { return appErrors.ErrPayloadTooLarge }

func (m *uploadServiceMock) MaxContentLength() int64 { return m.maxLen }

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	c.Request = req
	return c, w
}

func TestUploadHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &uploadServiceMock{
		maxLen: 1024,
		resp: &dto.UploadResponse{
			Success:  true,
			ID:       "a3f2c1b9e4d7",
			Filename: "a3f2c1b9e4d7.html",
			URL:      "http://localhost:8080/files/a3f2c1b9e4d7.html",
		},
	}
	h := NewUploadHandler(mockSvc)

	html := []byte("<html><body>hello</body></html>")
	c, w := newGinContext(http.MethodPost, "/upload", html)
	h.Upload(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, html, mockSvc.gotHTML)

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "a3f2c1b9e4d7", resp.ID)
}

func TestUploadHandlerEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUploadHandler(&uploadServiceMock{maxLen: 1024})

	c, w := newGinContext(http.MethodPost, "/upload", nil)
	h.Upload(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "error")
}

func TestUploadHandlerDeclaredTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &uploadServiceMock{maxLen: 8}
	h := NewUploadHandler(mockSvc)

	c, w := newGinContext(http.MethodPost, "/upload", nil)
	c.Request.ContentLength = 1 << 20
	h.Upload(c)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.False(t, mockSvc.called, "service must not be reached when the declared length is over the limit")
}

func TestUploadHandlerActualTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &uploadServiceMock{maxLen: 8}
	h := NewUploadHandler(mockSvc)

	c, w := newGinContext(http.MethodPost, "/upload", []byte("123456789"))
	// Chunked upload: no declared length, only the body itself is oversized.
	c.Request.ContentLength = -1
	h.Upload(c)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestUploadHandlerServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUploadHandler(&uploadServiceMock{maxLen: 1024, err: appErrors.ErrStoreIO})

	c, w := newGinContext(http.MethodPost, "/upload", []byte("<html></html>"))
	h.Upload(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
