// Package auth implements the token contract shared by every login route:
// HS256-signed claims carrying the principal's id, email and role, verified
// by a single pure function so the HTTP middleware stays a thin wrapper.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role names match the values embedded in issued tokens. The role is decided
// by which login route authenticated the principal, then validated against
// the same table on later lookups.
const (
	RoleAdmin     = "admin"
	RolePanchayat = "panchayat"
	RoleOperator  = "operator"
	RoleVillager  = "villager"
)

// Verification outcomes. Each maps to a distinct 401 body in the middleware;
// ErrExpiredToken is kept separate from ErrInvalidToken because expiry has
// its own observable message.
var (
	ErrNoHeader     = errors.New("authorization header missing")
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the token payload. ID is the primary key in the role's own table
// (house_no for villagers).
type Claims struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for a principal. Every role gets an
// explicit expiry; ttlMin comes from config so tests can shrink it.
func IssueToken(secret string, id uint64, email, role string, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		ID:    id,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlMin) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseBearer validates the Authorization header of a request and returns the
// decoded claims. It is deliberately free of any HTTP or database dependency
// so one implementation gates every protected route.
func ParseBearer(secret, header string) (*Claims, error) {
	if header == "" {
		return nil, ErrNoHeader
	}
	// "Bearer <token>": anything after the first whitespace is the token.
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return nil, ErrNoToken
	}
	return ParseToken(secret, fields[1])
}

// ParseToken verifies a raw token string against the signing secret.
func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
