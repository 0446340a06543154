package app

import (
	"strings"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/bnema/toolshed/internal/adapters/in/http/api"
	"github.com/bnema/toolshed/internal/adapters/in/http/middleware"
	"github.com/bnema/toolshed/internal/adapters/in/http/web"
)

// MetricsPath serves the Prometheus metrics.
const MetricsPath = "/metrics"

// The collectors register with the default Prometheus registry, which only
// accepts them once per process.
var metricsMiddleware = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("toolshed")
})

// NewRouter builds the echo instance serving the JSON API, the HTML pages,
// health and metrics.
func NewRouter(k *Kernel) (*echo.Echo, error) {
	cfg := k.Config()
	logger := k.Logger()

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Cron.Location()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(metricsMiddleware())
	if cfg.RateLimit.Enabled {
		e.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rate:      cfg.RateLimit.Rate,
			Burst:     cfg.RateLimit.Burst,
			ExpiresIn: cfg.RateLimit.ExpiresIn,
			Skipper:   skipInfra,
		}))
	}

	e.GET(MetricsPath, echoprometheus.NewHandler())

	api.NewHandler(k.Cron(), k.Tax(), api.Options{
		BaseURL:      cfg.Server.BaseURL,
		PreviewCount: cfg.Cron.PreviewCount,
		TaxPeriod:    k.TaxPeriod(),
	}, logger).RegisterRoutes(e)

	web.NewHandler(k.Cron(), k.Tax(), web.Options{
		BaseURL:      cfg.Server.BaseURL,
		PreviewCount: cfg.Cron.PreviewCount,
		TaxPeriod:    k.TaxPeriod(),
		Location:     loc,
	}, logger).RegisterRoutes(e)

	return e, nil
}

// skipInfra exempts health checks and metrics scrapes from rate limiting.
func skipInfra(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/healthz" || strings.HasPrefix(path, MetricsPath)
}
