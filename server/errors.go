package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satishbabariya/forte-go/graph"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// StatusFor maps an engine error to an HTTP status.
func StatusFor(err error) int {
	switch diagnostics.KindOf(err) {
	case diagnostics.DatasetNotReady:
		return http.StatusServiceUnavailable
	case diagnostics.QueryTooLong:
		return http.StatusRequestURITooLong
	case diagnostics.InvalidProperty, diagnostics.InvalidPattern, diagnostics.InvalidRangeQuery:
		return http.StatusBadRequest
	case diagnostics.NoMatch:
		return http.StatusNotFound
	}
	if errors.Is(err, graph.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func errorBody(kind, message string) gin.H {
	return gin.H{"error": gin.H{"kind": kind, "message": message}}
}

// abortWithError writes the error response and counts it.
func (s *Server) abortWithError(c *gin.Context, err error) {
	kind := diagnostics.KindOf(err).String()
	if errors.Is(err, graph.ErrNotFound) {
		kind = "NotFound"
	}
	message := err.Error()
	var de *diagnostics.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", GetRequestID(c))
		message = "internal error"
	}
	if s.metrics != nil {
		s.metrics.QueryErrors.WithLabelValues(kind).Inc()
	}
	c.AbortWithStatusJSON(status, errorBody(kind, message))
}
