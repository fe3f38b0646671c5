package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(ctxWithQuery(t, ""))
	assert.Equal(t, Query{Page: DefaultPage, Size: DefaultSize}, q)
}

func TestFromContextExplicit(t *testing.T) {
	q := FromContext(ctxWithQuery(t, "page=3&size=5"))
	assert.Equal(t, Query{Page: 3, Size: 5}, q)
}

func TestFromContextLimitAlias(t *testing.T) {
	q := FromContext(ctxWithQuery(t, "page=2&limit=7"))
	assert.Equal(t, Query{Page: 2, Size: 7}, q)
}

func TestFromContextClamps(t *testing.T) {
	q := FromContext(ctxWithQuery(t, "page=0&size=0"))
	assert.Equal(t, Query{Page: 1, Size: DefaultSize}, q)

	q = FromContext(ctxWithQuery(t, "page=-3&size=9999"))
	assert.Equal(t, Query{Page: 1, Size: MaxSize}, q)

	q = FromContext(ctxWithQuery(t, "page=abc&size=xyz"))
	assert.Equal(t, Query{Page: DefaultPage, Size: DefaultSize}, q)
}
