package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Identity returns an Echo middleware that reads an optional Bearer token and
// tags the request with the token's subject claim.  The API itself is open;
// the tag only feeds the rate limiter so authenticated callers get their own
// bucket instead of sharing the per-IP one.  Requests without a token, or
// with a token that fails verification, proceed as anonymous rather than
// being rejected.  When no secret is configured the middleware is a no-op.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; any other signing method is
			// rejected inside the key callback.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return next(c)
			}

			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				if sub, ok := claims["sub"].(string); ok && sub != "" {
					c.Set("caller_id", sub)
				}
			}
			return next(c)
		}
	}
}
