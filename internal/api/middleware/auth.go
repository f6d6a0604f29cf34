package middleware

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/storelane/customer-accounts/internal/core/domain"
)

type principalKey struct{}

// WithPrincipal stores an authenticated principal in the context.
func WithPrincipal(ctx context.Context, p domain.AccessPayload) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the authenticated principal. ok is false for
// anonymous requests and for anything that fails to round-trip as a
// well-formed principal, so callers fail closed.
func PrincipalFrom(ctx context.Context) (domain.AccessPayload, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.AccessPayload)
	if !ok || p.ID == "" || p.Role == "" {
		return domain.AccessPayload{}, false
	}
	return p, true
}

// Auth verifies the bearer token when one is present and injects the
// decoded principal into the request context. It never rejects by itself:
// public and protected operations share the single GraphQL endpoint, so
// rejection is the per-operation guard's job. A missing, malformed or
// unverifiable token simply leaves the request anonymous.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return next(c)
			}

			payload := domain.AccessPayload{
				ID:    stringClaim(claims, "id"),
				Email: stringClaim(claims, "email"),
				Role:  stringClaim(claims, "role"),
			}

			ctx := WithPrincipal(c.Request().Context(), payload)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
