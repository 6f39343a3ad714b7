// Package handler implements the HTTP endpoints. Handlers classify failures
// into the httperr taxonomy and trust the identity the JWT middleware put in
// the context.
package handler

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/httperr"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
)

// dbCtx bounds a database call to 5 seconds while still honoring client
// disconnects through the request context.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, httperr.New(httperr.Validation, "invalid id")
	}
	return id, nil
}

func validEmail(email string) bool { return emailRe.MatchString(email) }
func validPhone(phone string) bool { return phoneRe.MatchString(phone) }
