package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"messaging-service/internal/apperrors"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

// respondError maps the error taxonomy to HTTP statuses. Unknown errors are
// reported as 500 with the fallback message so internals never leak.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsPermission(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsTransient(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store temporarily unavailable"})
	default:
		log.Printf("request %s: %s: %v", requestIDFromContext(c), fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// retryRead runs a read operation, retrying transient store failures with
// exponential backoff. Writes never go through here: retrying a send could
// duplicate it.
func retryRead[T any](ctx context.Context, op func() (T, error)) (T, error) {
	var result T
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = 2 * time.Second

	err := backoff.Retry(func() error {
		var opErr error
		result, opErr = op()
		if opErr == nil {
			return nil
		}
		if apperrors.IsTransient(opErr) {
			return opErr
		}
		return backoff.Permanent(opErr)
	}, backoff.WithContext(policy, ctx))

	return result, err
}
