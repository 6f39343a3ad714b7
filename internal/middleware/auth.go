// Package middleware provides shared request processing: the JWT gate, the
// role gate, and the login rate limiter.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/auth"
)

// Context keys under which verified identity is stored for handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// JWTAuth returns the middleware gating every protected route. Verification
// itself lives in auth.ParseBearer; this wrapper only translates the
// sentinel errors into their 401 bodies and attaches the decoded principal
// to the context. Rejection happens before any database access.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := auth.ParseBearer(secret, c.Request().Header.Get("Authorization"))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": authMessage(err)})
			}
			c.Set(CtxUserID, claims.ID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// authMessage keeps the historically distinct 401 bodies: a header without a
// token and an expired token each have their own message, everything else is
// the generic "Unauthorized".
func authMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrNoToken):
		return "No token provided"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	default:
		return "Unauthorized"
	}
}

// Principal reads the verified identity out of the request context. ok is
// false when JWTAuth did not run for this route.
func Principal(c echo.Context) (id uint64, email, role string, ok bool) {
	id, okID := c.Get(CtxUserID).(uint64)
	email, okEmail := c.Get(CtxEmail).(string)
	role, okRole := c.Get(CtxRole).(string)
	return id, email, role, okID && okEmail && okRole
}
