package middleware

import (
	"github.com/labstack/echo/v4"
)

const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders sets hardening headers on every response. Paths listed in
// htmlPaths serve browser pages and skip the deny-all Content-Security-Policy.
func SecurityHeaders(htmlPaths ...string) echo.MiddlewareFunc {
	html := make(map[string]bool, len(htmlPaths))
	for _, p := range htmlPaths {
		html[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "0")
			if !html[c.Request().URL.Path] {
				h.Set("Content-Security-Policy", apiCSP)
			}
			h.Set("Referrer-Policy", "no-referrer")

			// Patient data must not be cached by intermediaries.
			h.Set("Cache-Control", "no-store")

			return next(c)
		}
	}
}
