package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/leave-request-manager/internal/errors"
	"github.com/yukikurage/leave-request-manager/internal/ratelimit"
	"go.uber.org/zap"
)

// LoginRateLimit throttles login attempts per client IP. A successful login
// clears the client's counter.
func LoginRateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "login:" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// fail open; the credential check still runs
			zap.L().Warn("login rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			if err := limiter.Reset(c.Request.Context(), key); err != nil {
				zap.L().Warn("failed to reset login rate limit", zap.Error(err))
			}
		}
	}
}
