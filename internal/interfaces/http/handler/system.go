package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger
type PingerFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthTimeout bounds the database ping of the health check
const HealthTimeout = 2 * time.Second

// SystemHandler serves health and build information
type SystemHandler struct {
	BaseHandler
	db        Pinger
	version   string
	startTime time.Time
	logger    *zap.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"connected"`
}

// Health godoc
// @Summary      Health check
// @Description  Reports service status and database connectivity
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), HealthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Database: "disconnected",
		})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "connected"})
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"FreshMart API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"goVersion" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// Info godoc
// @Summary      Get system information
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "FreshMart API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
