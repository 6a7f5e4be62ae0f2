package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pingRoutes = RouteFunc(func(e *echo.Echo) {
	e.GET("/api/ping", func(c echo.Context) error { return SuccessResponse(c, "pong") })
	e.GET("/api/missing", func(c echo.Context) error { return AppErrorResponse(c, NotFoundError("nope")) })
})

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	opts = append([]ServerOption{WithRegistry(prometheus.NewRegistry())}, opts...)
	return NewServer(pingRoutes, nil, opts...)
}

func TestServer_RoutesHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/ping", "/healthz"} {
		rec := httptest.NewRecorder()
		s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/ping",status="200"} 1`)
}

func TestServer_AppErrorStatus(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"ERR_NOT_FOUND"`)
}

func TestServer_MetricsPathDisabled(t *testing.T) {
	s := newTestServer(t, WithMetricsPath(""))
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFoundError("no such symbol"))
	assert.ErrorIs(t, err, NotFoundError(""))
	assert.NotErrorIs(t, err, InternalError(""))

	p := InvalidParamError("seed", "seed %q is not an unsigned integer", "x")
	assert.Equal(t, "seed", p.Field)
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Equal(t, `seed "x" is not an unsigned integer`, p.Error())
}

func TestServer_Readiness(t *testing.T) {
	ok := newTestServer(t, WithReadinessCheck("cache", func(context.Context) error { return nil }))
	rec := httptest.NewRecorder()
	ok.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newTestServer(t,
		WithReadinessCheck("cache", func(context.Context) error { return nil }),
		WithReadinessCheck("clickhouse", func(context.Context) error { return errors.New("dial tcp: refused") }),
	)
	rec = httptest.NewRecorder()
	down.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clickhouse":"dial tcp: refused"`)
	assert.NotContains(t, rec.Body.String(), `"cache"`)
}
