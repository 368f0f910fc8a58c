package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const TokenContextKey = "sessionToken"

// SessionToken pulls the bearer token out of the Authorization header and
// stashes it in the echo context. Resolution against the token store happens
// inside the services, which own authorization.
func SessionToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing Authorization header")
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization header")
			}

			c.Set(TokenContextKey, parts[1])
			return next(c)
		}
	}
}

func Token(c echo.Context) string {
	token, _ := c.Get(TokenContextKey).(string)
	return token
}
