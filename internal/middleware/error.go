package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/apperror"
)

// AbortWithError writes err as the JSON error envelope and aborts the chain.
// Errors that are not *apperror.Error are rendered as internal errors. The
// wrapped error text is only exposed when showDetails is set.
func AbortWithError(c *gin.Context, err error, showDetails bool) {
	appErr := apperror.As(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Status, appErr.Response(showDetails))
}

// Recovery turns panics into an INTERNAL_ERROR response and logs the stack
func Recovery(log *zap.Logger, showDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				AbortWithError(c, apperror.Internal(fmt.Errorf("panic: %v", r)), showDetails)
			}
		}()
		c.Next()
	}
}

// NotFound renders unknown routes with the error envelope
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, apperror.NotFound("Route not found").Response(false))
	}
}
