package middleware

import (
	"net/http"

	"github.com/freshmart/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig starts a server span per request using otelgin
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return otelgin.Middleware(cfg.ServiceName)
}

// SpanEnricher adds the request id, principal and status class to the server
// span. It must run after TracingWithConfig. otelgin ends the span only
// after the whole chain returns, so attributes set here still land on it.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}
		if id := c.GetString(logger.RequestIDContextKey); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}

		c.Next()

		if user := CurrentUser(c); user != nil {
			span.SetAttributes(
				attribute.String("principal_id", user.ID.String()),
				attribute.String("principal_role", user.Role.String()),
			)
		} else if farmer := CurrentFarmer(c); farmer != nil {
			span.SetAttributes(
				attribute.String("principal_id", farmer.ID.String()),
				attribute.String("principal_role", farmer.Role().String()),
			)
		}

		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			span.SetAttributes(attribute.String("http.status_class", StatusGroup(status)))
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
