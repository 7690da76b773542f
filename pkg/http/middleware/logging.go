package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "RegimeScope/pkg/logger"
)

// RequestLogging logs one line per request through the app logger. A nil
// logger disables request logging.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			l.Info("http request",
				applogger.String("method", c.Request().Method),
				applogger.String("path", c.Request().RequestURI),
				applogger.String("remote", c.Request().RemoteAddr),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
