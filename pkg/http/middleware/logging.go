package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "PriceCast/pkg/logger"
)

// RequestLogging logs HTTP requests at debug level; 4xx at info.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Duration("duration_ms", time.Since(start)),
			}
			if res.Status >= 400 && res.Status < 500 {
				l.Info("http.request client_error", fields...)
			} else {
				l.Debug("http.request", fields...)
			}
			return nil
		}
	}
}
