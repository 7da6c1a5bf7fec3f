package handler

import (
	"errors"
	"net/http"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/infrastructure/logger"
	"github.com/freshmart/backend/internal/infrastructure/telemetry"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/freshmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(logger.RequestIDContextKey)
}

// Success sends a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends a 200 envelope with the item count in meta
func (h *BaseHandler) SuccessList(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Removed answers a delete with {"message": "<entity> removed"}
func (h *BaseHandler) Removed(c *gin.Context, entity string) {
	h.Success(c, dto.MessageResponse{Message: entity + " removed"})
}

// Error sends an error envelope with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 error envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 error envelope
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 error envelope
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 error envelope
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain errors to their HTTP status and a body cut off by
// the size limit to 413. Anything else is logged and answered with a
// generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge,
			"Request body exceeds maximum allowed size")
		return
	}

	_ = c.Error(err)
	ctx := c.Request.Context()
	logger.FromContext(ctx).Error("Unhandled error", zap.Error(err), zap.String("trace_id", telemetry.GetTraceID(ctx)))
	h.InternalError(c, "An unexpected error occurred")
}

// BindJSON binds the request body, answering 400 on failure
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// ParseID reads the :id path parameter. A malformed id cannot name any
// entity, so it is answered like a missing one.
func (h *BaseHandler) ParseID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, entity+" not found")
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user's id. Routes using it sit
// behind Protect, so a missing user is a wiring error.
func (h *BaseHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.Unauthorized(c, "Not authorized, user not found")
		return uuid.Nil, false
	}
	return user.ID, true
}

func (h *BaseHandler) currentFarmerID(c *gin.Context) (uuid.UUID, bool) {
	farmer := middleware.CurrentFarmer(c)
	if farmer == nil {
		h.Unauthorized(c, "Not authorized, farmer not found")
		return uuid.Nil, false
	}
	return farmer.ID, true
}
