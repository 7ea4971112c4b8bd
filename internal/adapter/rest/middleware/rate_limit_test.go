package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doLimited(t *testing.T, rl *RateLimiter, path, ip string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":1234"
	c := e.NewContext(req, httptest.NewRecorder())
	return rl.Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(t.Context(), 1, 2)

	require.NoError(t, doLimited(t, rl, "/news", "10.0.0.1"))
	require.NoError(t, doLimited(t, rl, "/news", "10.0.0.1"))

	err := doLimited(t, rl, "/news", "10.0.0.1")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)

	// other clients have their own bucket
	assert.NoError(t, doLimited(t, rl, "/news", "10.0.0.2"))
}

func TestRateLimiter_SkipsSystemPaths(t *testing.T) {
	rl := NewRateLimiter(t.Context(), 1, 1, "/health")

	for i := 0; i < 5; i++ {
		assert.NoError(t, doLimited(t, rl, "/health", "10.0.0.3"))
	}
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(t.Context(), 1, 1)
	rl.limiterFor("10.0.0.4")
	rl.limiterFor("10.0.0.5")
	rl.limiters["10.0.0.4"].lastSeen = time.Now().Add(-10 * time.Minute)

	rl.evictIdle(time.Now())

	assert.NotContains(t, rl.limiters, "10.0.0.4")
	assert.Contains(t, rl.limiters, "10.0.0.5")
}
