package middleware

import (
	"math"
	"net/http"
	"strconv"

	"byblos-atelier/internal/cache"
	"byblos-atelier/internal/metrics"
	apperrors "byblos-atelier/pkg/app_errors"
	"byblos-atelier/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit counts requests per client IP within scope. Limiter failures let the
// request through.
func RateLimit(limiter cache.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			logger.WithComponent("ratelimit").Error("Rate limiter unavailable",
				zap.String("scope", scope),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			metrics.TrackRateLimited(scope)
			logger.WithComponent("ratelimit").Warn("Rate limit exceeded",
				zap.String("scope", scope),
				zap.String("client_ip", c.ClientIP()),
			)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": apperrors.ErrRateLimited.Error()})
			return
		}
		c.Next()
	}
}
