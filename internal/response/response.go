// Package response writes the JSON error envelope shared by all handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubdesk/matchday/internal/apperr"
)

// Error codes of the envelope.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse represents the error body returned by every endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Error writes an error envelope with the given status.
func Error(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// AbortWithError writes an error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, code string, message string, statusCode int) {
	Error(c, code, message, statusCode)
	c.Abort()
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, CodeNotFound, message, http.StatusNotFound)
}

// InvalidBody writes the 400 envelope for an undecodable request body.
func InvalidBody(c *gin.Context) {
	Error(c, CodeInvalidRequest, "invalid request body", http.StatusBadRequest)
}

// FromError maps err to its status by kind. Unclassified errors are logged
// with logMsg and keyvals and answered with a generic 500.
func FromError(c *gin.Context, logger *zap.SugaredLogger, err error, logMsg string, keyvals ...interface{}) {
	switch apperr.KindOf(err) {
	case apperr.ErrValidation:
		Error(c, CodeInvalidRequest, err.Error(), http.StatusBadRequest)
	case apperr.ErrNotFound:
		Error(c, CodeNotFound, err.Error(), http.StatusNotFound)
	case apperr.ErrConflict:
		Error(c, CodeConflict, err.Error(), http.StatusConflict)
	case apperr.ErrUnauthorized:
		Error(c, CodeUnauthorized, err.Error(), http.StatusUnauthorized)
	case apperr.ErrForbidden:
		Error(c, CodeForbidden, err.Error(), http.StatusForbidden)
	default:
		logger.Errorw(logMsg, append(keyvals, "error", err)...)
		Error(c, CodeInternal, "internal server error", http.StatusInternalServerError)
	}
}
