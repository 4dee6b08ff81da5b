package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"student-manager-api/internal/domain/apperror"
)

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND_ERROR"
	CodeConflict       = "CONFLICT_ERROR"
	CodeRateLimit      = "RATE_LIMIT_ERROR"
	CodeInternal       = "INTERNAL_SERVER_ERROR"

	// ISO 8601 with milliseconds, always UTC
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type (
	ErrorBody struct {
		Code    string                `json:"code"`
		Message string                `json:"message"`
		Details []apperror.FieldError `json:"details,omitempty"`
	}
	Envelope struct {
		Success   bool       `json:"success"`
		Message   string     `json:"message,omitempty"`
		Data      any        `json:"data,omitempty"`
		Error     *ErrorBody `json:"error,omitempty"`
		Timestamp string     `json:"timestamp"`
	}
)

var kinds = map[apperror.Kind]struct {
	status int
	code   string
}{
	apperror.KindValidation:     {http.StatusBadRequest, CodeValidation},
	apperror.KindAuthentication: {http.StatusUnauthorized, CodeAuthentication},
	apperror.KindAuthorization:  {http.StatusForbidden, CodeAuthorization},
	apperror.KindNotFound:       {http.StatusNotFound, CodeNotFound},
	apperror.KindConflict:       {http.StatusConflict, CodeConflict},
	apperror.KindRateLimit:      {http.StatusTooManyRequests, CodeRateLimit},
}

func now() string { return time.Now().UTC().Format(timestampLayout) }

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func OKWithMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail writes an error envelope and aborts the chain.
func Fail(c *gin.Context, status int, code, message string, details ...apperror.FieldError) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: now(),
	})
}

// Error translates err into its HTTP form. Unclassified errors are logged
// and reported as a bare 500.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if k, ok := kinds[appErr.Kind]; ok {
			Fail(c, k.status, k.code, appErr.Message, appErr.Details...)
			return
		}
	}

	logger.Error("unhandled error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Stack("stack"),
	)
	Fail(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
}
