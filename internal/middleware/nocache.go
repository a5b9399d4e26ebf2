package middleware

import (
	"github.com/labstack/echo/v4"
)

// NoCache marks every response as non-cacheable. Portfolio and history
// pages reflect the ledger at request time and must not be served stale.
func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		return next(c)
	}
}
