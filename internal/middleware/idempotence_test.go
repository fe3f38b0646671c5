package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotenceEngine(t *testing.T, authed bool, hits *int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) { c.Set(ContextKeyUserID, "user-1") })
	}
	r.Use(Idempotence(rdb))
	handler := func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
	r.PUT("/api/links/:id/toggle-active", handler)
	r.POST("/api/links/:id/click", handler)
	r.POST("/api/links", handler)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotenceAllowsRepeatedAuthenticatedToggles(t *testing.T) {
	hits := 0
	r := newIdempotenceEngine(t, true, &hits)

	first := doJSON(r, http.MethodPut, "/api/links/l1/toggle-active", "", nil)
	second := doJSON(r, http.MethodPut, "/api/links/l1/toggle-active", "", nil)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 2, hits)
}

func TestIdempotenceBlocksAnonymousDuplicate(t *testing.T) {
	hits := 0
	r := newIdempotenceEngine(t, false, &hits)

	body := `{"title":"a","url":"https://example.com"}`
	first := doJSON(r, http.MethodPost, "/api/links", body, nil)
	second := doJSON(r, http.MethodPost, "/api/links", body, nil)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 1, hits)

	// a different body is a different request
	third := doJSON(r, http.MethodPost, "/api/links", `{"title":"b","url":"https://example.com"}`, nil)
	assert.Equal(t, http.StatusOK, third.Code)
}

func TestIdempotenceHonorsExplicitKey(t *testing.T) {
	hits := 0
	r := newIdempotenceEngine(t, true, &hits)

	hdr := map[string]string{idempotenceHeader: "op-42"}
	first := doJSON(r, http.MethodPut, "/api/links/l1/toggle-active", "", hdr)
	second := doJSON(r, http.MethodPut, "/api/links/l1/toggle-active", "", hdr)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 1, hits)
}

func TestIdempotenceSkipsClickPath(t *testing.T) {
	hits := 0
	r := newIdempotenceEngine(t, false, &hits)

	for i := 0; i < 3; i++ {
		w := doJSON(r, http.MethodPost, "/api/links/l1/click", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 3, hits)
}
