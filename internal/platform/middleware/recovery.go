package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cardio/cardio/internal/platform/apperror"
)

// Recovery turns a panic anywhere below it into an INTERNAL_ERROR. The
// request id set by RequestID is read back after the panic unwinds, so the
// log line and the error body can be correlated.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				req := c.Request()
				rid, _ := c.Get("request_id").(string)
				logger.Error().
					Str("request_id", rid).
					Str("method", req.Method).
					Str("path", req.URL.Path).
					Str("panic", fmt.Sprint(r)).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")

				details := map[string]any{"method": req.Method, "path": req.URL.Path}
				if rid != "" {
					details["requestId"] = rid
				}
				err = apperror.Internal(details)
			}()
			return next(c)
		}
	}
}
