package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(RateLimitConfig{
		Rate:      0.001,
		Burst:     2,
		ExpiresIn: time.Minute,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/healthz"
		},
	}))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(path, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("/", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("/", "10.0.0.1").Code)

	denied := do("/", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, denied.Code)
	assert.Equal(t, "1", denied.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do("/", "10.0.0.2").Code, "other clients keep their own bucket")

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do("/healthz", "10.0.0.1").Code)
	}
}
