// Package middleware holds the echo middleware shared by the API routes.
package middleware

import (
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"propertyhub/internal/auth"
	"propertyhub/internal/errors"
)

// ClaimsContextKey is where Authenticate stores the decoded claims.
const ClaimsContextKey = "user"

// Authenticate requires a valid "Authorization: Bearer <token>" header.
// Every failure reports the same 401 so callers learn nothing about why.
func Authenticate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			if strings.TrimSpace(token) == "" {
				return nil, errors.ErrAuthenticationFailed
			}
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errors.ErrAuthenticationFailed
		},
	})
}

// RequireRole lets a request through only when its token carries role.
// It must run after Authenticate.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return errors.ErrAuthenticationFailed
			}
			if claims.Role != role {
				return errors.ErrInsufficientPermissions
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims Authenticate attached to c.
func ClaimsFromContext(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}
