package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newRateLimitEngine(t *testing.T, authed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) { c.Set(ContextKeyUserID, "user-1") })
	}
	r.Use(RateLimit(rdb))
	r.GET("/api/profile/alice", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	return r
}

func TestRateLimitCapsAnonymousTraffic(t *testing.T) {
	r := newRateLimitEngine(t, false)

	// the burst spans at most two one-second windows, so one window must
	// exceed the cap
	limited := 0
	for i := 0; i < 2*rateLimitMax+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/profile/alice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
		}
	}
	assert.Greater(t, limited, 0)
}

func TestRateLimitExemptsAuthenticated(t *testing.T) {
	r := newRateLimitEngine(t, true)

	for i := 0; i < 2*rateLimitMax+2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/profile/alice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
