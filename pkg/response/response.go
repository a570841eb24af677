package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/html2url/pkg/errors"
)

// ErrorBody is the wire shape of every error response: a single
// human-readable message.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends a success payload. API responses are never cacheable; served
// artifacts set their own cache headers in the files handler.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
}
