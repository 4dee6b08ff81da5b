package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"student-manager-api/internal/infrastructure/metrics"
	"student-manager-api/internal/infrastructure/ratelimit"
	"student-manager-api/internal/interface/api/rest/response"
)

const MsgAuthRateLimited = "Too many authentication attempts. Please try again in 1 minute."

// RateLimit limits requests per client IP. When the limiter itself fails the
// request is let through.
func RateLimit(l ratelimit.Limiter, logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			if mCounter != nil {
				mCounter.WithLabelValues(metrics.RateLimitedTotal).Inc()
			}
			response.Fail(c, http.StatusTooManyRequests, response.CodeRateLimit, MsgAuthRateLimited)
			return
		}

		c.Next()
	}
}
