package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/kojsok/eveok-backend/backend/session"
	"github.com/labstack/echo/v4"
)

const LoginPage = "/login"
const ProtectedPage = "/scaner"

// namespaces that must stay reachable without a session so that token issuing
// and asset serving keep working for anonymous users
var openPrefixes = []string{"/api/", "/auth/", "/static/"}

var protectedPatterns = []string{
	ProtectedPage,
	ProtectedPage + "/*",
}

// RequireSession redirects to the login page when a protected path is requested
// without a session cookie, cookie presence is the only admission criterion,
// the token itself is not validated against the identity provider
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		for _, prefix := range openPrefixes {
			if strings.HasPrefix(requestPath, prefix) {
				return next(c)
			}
		}
		if !isProtected(requestPath) {
			return next(c)
		}
		if _, err := session.Read(c); err != nil {
			return c.Redirect(http.StatusFound, LoginPage)
		}
		return next(c)
	}
}

func isProtected(requestPath string) bool {
	for _, pattern := range protectedPatterns {
		if matchPattern(pattern, requestPath) {
			return true
		}
	}
	return false
}

// a trailing /* gates the whole subtree, path.Match alone stops at the next
// slash and would leave deeper pages ungated
func matchPattern(pattern string, requestPath string) bool {
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(requestPath, strings.TrimSuffix(pattern, "*"))
	}
	matched, err := path.Match(pattern, requestPath)
	if err != nil {
		// fail open on a pattern error so a bad pattern never blocks
		// unrelated routes
		return false
	}
	return matched
}
