package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-User-Id"); uid != "" {
			c.Set("profile_id", uid)
		}
	})
	r.POST("/ping", rl.Handler("profile_id"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(1, 2))

	do := func(uid string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		req.Header.Set("X-User-Id", uid)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("user-a"))
	assert.Equal(t, http.StatusOK, do("user-a"))
	assert.Equal(t, http.StatusTooManyRequests, do("user-a"), "burst of 2 exhausted")

	assert.Equal(t, http.StatusOK, do("user-b"), "buckets are per identity")
}
