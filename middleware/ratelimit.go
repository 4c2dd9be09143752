package middleware

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coastwatch/models"
)

// OTPRateLimit applies a fixed-window per-client limit to OTP sends,
// backed by Redis. With a nil client the middleware is a no-op, so
// deployments without Redis keep working.
func OTPRateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := "otp:" + c.ClientIP()
		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// limiter failure must not take the endpoint down
			log.Warnf("otp rate limit: redis incr failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(c.Request.Context(), key, window).Err(); err != nil {
				log.Warnf("otp rate limit: redis expire failed: %v", err)
			}
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "too many OTP requests, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
