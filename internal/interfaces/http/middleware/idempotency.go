package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/freshmart/backend/internal/infrastructure/logger"
	"github.com/freshmart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader lets a client retry a create request safely
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds client supplied idempotency keys
const MaxIdempotencyKeyLength = 128

// IdempotencyStore records keys for a limited time
type IdempotencyStore interface {
	// MarkProcessed reports whether key was newly recorded
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotent rejects a request that repeats the Idempotency-Key of an earlier
// request by the same caller on the same route within ttl. Requests without
// the header pass through. A request that ends with an error status releases
// its key so it can be retried. Store failures let the request through.
func Idempotent(store IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		requestID := c.GetString(logger.RequestIDContextKey)
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeValidation, "Idempotency-Key is too long", requestID))
			return
		}

		scoped := idempotencyScope(c) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()
		fresh, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable", zap.String("request_id", requestID), zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeConflict, "Duplicate request", requestID))
			return
		}

		release := func() {
			if err := store.Release(context.WithoutCancel(ctx), scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.String("request_id", requestID), zap.Error(err))
			}
		}
		defer func() {
			// a panicking handler committed nothing; the recovery middleware
			// above answers 500
			if rec := recover(); rec != nil {
				release()
				panic(rec)
			}
		}()

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			release()
		}
	}
}

func idempotencyScope(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return "user:" + user.ID.String()
	}
	if farmer := CurrentFarmer(c); farmer != nil {
		return "farmer:" + farmer.ID.String()
	}
	return "ip:" + c.ClientIP()
}
