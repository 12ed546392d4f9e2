package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/domain/dto"
	"github.com/guttosm/offsetcal/internal/logger"
)

// StatusFor maps an error to the HTTP status it is reported with.
//
//   - precondition, semantic: 400
//   - range: 422
//   - not implemented: 501
//   - deadline exceeded: 504
//   - anything else: 500
func StatusFor(err error) int {
	switch {
	case errors.Is(err, calerr.ErrPrecondition), errors.Is(err, calerr.ErrSemantic):
		return http.StatusBadRequest
	case errors.Is(err, calerr.ErrRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, calerr.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	if err != nil {
		resp.Kind = calerr.Kind(err)
	}
	c.AbortWithStatusJSON(status, resp)
}

// ErrorHandler renders the last error attached with c.Error when the handler
// did not write a response itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.With("http").Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	AbortWithError(c, status, http.StatusText(status), err)
}
