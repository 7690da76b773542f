package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	applogger "RegimeScope/pkg/logger"
)

// Recover turns handler panics into 500 responses. The stack is logged
// through the app logger when one is provided.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				panicErr, ok := r.(error)
				if !ok {
					panicErr = fmt.Errorf("%v", r)
				}
				if l != nil {
					l.Error("handler panic",
						applogger.String("path", c.Path()),
						applogger.Error(panicErr),
						applogger.String("stack", string(debug.Stack())),
					)
				}
				err = echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
			}()
			return next(c)
		}
	}
}
