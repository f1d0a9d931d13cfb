package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/jwalitptl/clinic-dashboard/pkg/errors"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

// ErrorHandler logs errors attached to the context and, when the handler
// wrote nothing, answers with the last one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		l := zerolog.Ctx(c.Request.Context())
		for _, e := range c.Errors {
			l.Error().
				Err(e.Err).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Interface("meta", e.Meta).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last().Err
		if appErr, ok := apperrors.As(lastErr); ok {
			resp := httputil.NewErrorResponse(appErr.Message)
			resp.Errors = appErr.Fields
			c.JSON(httputil.StatusCode(appErr.Code), resp)
			return
		}
		c.JSON(httputil.StatusCode(apperrors.ErrInternal), httputil.NewErrorResponse("Internal server error"))
	}
}
