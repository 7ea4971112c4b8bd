package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	custommw "github.com/hridaya423/newster/internal/adapter/rest/middleware"
	"github.com/hridaya423/newster/internal/apperrors"
	"github.com/hridaya423/newster/internal/infra/config"
	"github.com/hridaya423/newster/internal/infra/logger"
)

const (
	HealthPath  = "/health"
	MetricsPath = "/metrics"

	maxBodySize = "1M"
)

// routePrefixes mounts every proxy route twice: at the root and under /api,
// the path the browser dashboard historically used.
var routePrefixes = []string{"", "/api"}

// ApplyMiddleware installs the middleware chain. The first entry is the outermost.
func ApplyMiddleware(ctx context.Context, e *echo.Echo, cfg *config.Config) {
	systemPaths := []string{HealthPath, MetricsPath}
	isSystemPath := func(c echo.Context) bool {
		p := c.Request().URL.Path
		return p == HealthPath || p == MetricsPath
	}

	e.HTTPErrorHandler = HTTPErrorHandler

	// 1. server spans, status and request metrics
	e.Use(otelecho.Middleware(cfg.OTel.ServiceName, otelecho.WithSkipper(isSystemPath)))
	e.Use(custommw.OTelStatus())
	e.Use(custommw.HTTPMetrics())

	// 2. request id before anything logs
	e.Use(custommw.RequestID())
	e.Use(custommw.Logging(logger.Logger, systemPaths...))
	e.Use(middleware.Recover())

	// 3. headers
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, custommw.RequestIDHeader},
		ExposeHeaders: []string{custommw.RequestIDHeader},
		MaxAge:        86400,
	}))

	// 4. inbound protection
	limiter := custommw.NewRateLimiter(ctx, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, systemPaths...)
	e.Use(limiter.Middleware())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: cfg.Server.RequestTimeout,
	}))

	// 5. compression last
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:   5,
		Skipper: isSystemPath,
	}))
}

// RegisterRoutes mounts the proxy endpoints and the operational routes.
func RegisterRoutes(e *echo.Echo, h *Handler, metricsHandler http.Handler) {
	e.GET(HealthPath, h.Health)
	if metricsHandler != nil {
		e.GET(MetricsPath, echo.WrapHandler(metricsHandler))
	}

	for _, prefix := range routePrefixes {
		g := e.Group(prefix)
		g.GET("/news", h.GetNews)
		g.GET("/search", h.SearchNews)
		g.POST("/analyze", h.AnalyzeArticle)
		g.POST("/summarize", h.SummarizeArticle)
		g.GET("/categories", h.Categories)
	}
}

// HTTPErrorHandler writes errors that escape the handlers (404, 405, 413,
// 429, panics) in the same {"error": "..."} shape the endpoints use.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	ctx := c.Request().Context()
	if code >= http.StatusInternalServerError {
		logger.NewContextLogger(logger.Logger.With("status", code)).LogError(ctx, "http_request", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, apperrors.HTTPErrorResponse{Error: message})
	}
	if err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "failed to write error response", "error", err)
	}
}
