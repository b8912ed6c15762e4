package middleware // reusable HTTP middleware shared by all route groups

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/auth"
)

// principalKey is the echo.Context key under which Authenticate binds
// the validated Principal for the remainder of the request.
const principalKey = "principal"

// Authenticate returns a middleware that runs once per request, before
// route dispatch. A missing Authorization header passes the request
// through anonymously. A header that is not exactly the two-segment
// form "Bearer <token>" (single space, case-sensitive scheme) is
// silently treated as no credential, not rejected. When the shape
// matches, the token is validated: failure clears the context and
// aborts the request with 401 before any handler runs; success binds
// the Principal under principalKey.
func Authenticate(p *auth.TokenProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}
			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return next(c)
			}
			pr, err := p.Validate(parts[1])
			if err != nil {
				c.Set(principalKey, nil)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(principalKey, pr)
			return next(c)
		}
	}
}

// RequireAuth rejects any request that reaches a protected route
// without a bound principal. Only register and login live outside the
// protected group; every other route is wrapped by this middleware.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentPrincipal(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			return next(c)
		}
	}
}

// CurrentPrincipal returns the principal bound by Authenticate, if any.
func CurrentPrincipal(c echo.Context) (auth.Principal, bool) {
	pr, ok := c.Get(principalKey).(auth.Principal)
	return pr, ok
}
