package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const CookieName = "session_token_holder"

// cookie lifetime in seconds, one day
const CookieMaxAge = 86400

// Write mints the session cookie holding the raw access token, the secure flag
// comes from the caller configuration and is never defaulted
func Write(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Read returns the bearer token carried by the session cookie, an error means
// no session is present on the request
func Read(c echo.Context) (string, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	if cookie.Value == "" {
		return "", http.ErrNoCookie
	}
	return cookie.Value, nil
}

// Clear overwrites the session cookie with an empty value, a negative MaxAge
// serializes as Max-Age=0 so the browser discards it immediately
func Clear(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
