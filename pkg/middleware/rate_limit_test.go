package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_AllowsWithinBurst(t *testing.T) {
	g := gin.New()
	g.GET("/", RateLimitMiddleware(1, 3), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		g.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i)
	}
}

func TestRateLimitMiddleware_RejectsBeyondBurst(t *testing.T) {
	g := gin.New()
	g.GET("/", RateLimitMiddleware(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		g.ServeHTTP(w, req)
		last = w.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
