package rate_limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int, window time.Duration, now *time.Time) *RateLimiter {
	rl := NewRateLimiter(limit, window)
	rl.now = func() time.Time { return *now }
	return rl
}

func TestSlidingWindow(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, time.Minute, &now)
	defer rl.Stop()

	assert.True(t, rl.IsAllowed("a"))
	now = now.Add(10 * time.Second)
	assert.True(t, rl.IsAllowed("a"))
	assert.False(t, rl.IsAllowed("a"))
	assert.True(t, rl.IsAllowed("b"))
	assert.Equal(t, 0, rl.GetRemainingRequests("a"))
	assert.Equal(t, time.Date(2024, 1, 10, 9, 1, 0, 0, time.UTC), rl.ResetAt("a"))

	now = now.Add(51 * time.Second)
	assert.Equal(t, 1, rl.GetRemainingRequests("a"))
	assert.True(t, rl.IsAllowed("a"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &now)
	defer rl.Stop()

	router := gin.New()
	router.POST("/api/receipts", Middleware(rl), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(agent string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/receipts", nil)
		req.Header.Set("User-Agent", agent)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send("tablet")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send("tablet")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "2024-01-10T09:01:00Z", second.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusCreated, send("laptop").Code)
}
