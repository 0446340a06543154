// Package middleware provides echo middleware for the HTTP adapters.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bnema/toolshed/internal/adapters/dto"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = echo.HeaderXRequestID

// RequestID reuses an incoming X-Request-ID or generates a UUID.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: RequestIDHeader,
	})
}

// RequestLogger logs every request and attaches a request-scoped logger to
// the request context for downstream handlers.
func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqLog := logger.With("request_id", c.Response().Header().Get(RequestIDHeader))
			c.SetRequest(req.WithContext(log.WithContext(req.Context(), reqLog)))
			return next(c)
		}
	}

	access := echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			kv := []any{
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"remote_ip", v.RemoteIP,
				"latency", v.Latency.Round(time.Microsecond),
			}
			if v.Error != nil {
				kv = append(kv, "err", v.Error)
			}
			if v.Status >= http.StatusInternalServerError {
				logger.Error("request", kv...)
				return nil
			}
			logger.Info("request", kv...)
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return access(attach(next))
	}
}

// PanicRecovery recovers from panics, logs them and answers 500.
func PanicRecovery(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						"panic", fmt.Sprint(r),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
					)
					err = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
				}
			}()
			return next(c)
		}
	}
}
