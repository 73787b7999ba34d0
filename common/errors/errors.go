package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenericMessage is the only thing a client ever sees of a server-side failure.
const GenericMessage = "Bir hata oluştu!"

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

func Validation(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

func Conflict(message string, err error) *Error {
	return New(http.StatusConflict, message, err)
}

func Unavailable(message string) *Error {
	return New(http.StatusServiceUnavailable, message, nil)
}

// Internal wraps an unexpected failure. The cause is logged, not returned.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, GenericMessage, err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf reports the HTTP status an error maps to.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// ErrorMiddleware renders the last error attached to the gin context as
// {"message": ...}. Anything that is not a client error is logged with its
// cause and answered with GenericMessage.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := As(err)
		if !ok || appErr.Code >= http.StatusInternalServerError {
			code := http.StatusInternalServerError
			if ok {
				code = appErr.Code
			}
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString("request_id")),
				zap.Error(err),
			)
			message := GenericMessage
			if ok && code != http.StatusInternalServerError {
				message = appErr.Message
			}
			c.AbortWithStatusJSON(code, gin.H{"message": message})
			return
		}

		c.AbortWithStatusJSON(appErr.Code, gin.H{"message": appErr.Message})
	}
}

// Recovery turns a panic into the generic failure response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": GenericMessage})
	})
}
