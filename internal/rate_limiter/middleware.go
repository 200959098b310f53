package rate_limiter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ClientKey identifies a caller by IP and user agent.
func ClientKey(c *gin.Context) string {
	return c.ClientIP() + "|" + c.Request.UserAgent()
}

// Middleware rejects callers over the limit with 429 and reports the
// budget in X-RateLimit headers.
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	limit := strconv.Itoa(rl.Limit())

	return func(c *gin.Context) {
		key := ClientKey(c)
		allowed := rl.IsAllowed(key)
		remaining := rl.GetRemainingRequests(key)
		resetAt := rl.ResetAt(key).UTC().Format(time.RFC3339)

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt)

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many requests, please try again later",
				"remaining": remaining,
				"reset_at":  resetAt,
			})
			return
		}

		c.Next()
	}
}
