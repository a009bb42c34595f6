package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/kojsok/eveok-backend/backend/application"
	"github.com/kojsok/eveok-backend/backend/config"
	"github.com/kojsok/eveok-backend/backend/middleware"
	"github.com/kojsok/eveok-backend/backend/model"
	"github.com/kojsok/eveok-backend/backend/session"
	"github.com/labstack/echo/v4"
	uuid "github.com/satori/go.uuid"
)

// ExchangeError is returned when the identity provider rejects the
// authorization code, the status is kept for logging but never forwarded to
// the client
type ExchangeError struct {
	StatusCode int
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed with status : %v", e.StatusCode)
}

// AuthorizeURL builds the redirect target starting the OAuth2 dance, the state
// parameter must be a fresh nonce per attempt
func AuthorizeURL(config *config.Config, state string) (string, error) {
	if config == nil {
		return "", errors.New("config is nil")
	}
	u, err := url.Parse(config.SSO.AuthorizeURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Add("response_type", "code")
	q.Add("redirect_uri", config.SSO.CallbackURL)
	q.Add("client_id", config.SSO.ClientID)
	q.Add("scope", config.SSO.Scopes)
	q.Add("state", state)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func fetchToken(httpClient *http.Client, endpointURL string, target interface{}, authorization string, code string) error {
	if httpClient == nil {
		return errors.New("no http client specified")
	}
	form := url.Values{}
	form.Add("grant_type", "authorization_code")
	form.Add("code", code)
	req, err := http.NewRequest("POST", endpointURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Basic %v", authorization))
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	r, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != 200 {
		return &ExchangeError{
			StatusCode: r.StatusCode,
		}
	}
	return json.NewDecoder(r.Body).Decode(target)
}

func basicAuth(config *config.Config) string {
	authorization := fmt.Sprintf("%v:%v", config.SSO.ClientID, config.SSO.ClientSecret)
	return base64.StdEncoding.EncodeToString([]byte(authorization))
}

// Login redirects the browser to the identity provider authorize endpoint
func Login(c echo.Context, app application.App) error {
	state := uuid.NewV4().String()
	location, err := AuthorizeURL(app.GetConfig(), state)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, location)
}

// Callback exchanges the authorization code for an access token and mints the
// session cookie, authorization codes are single use so nothing is retried
func Callback(c echo.Context, app application.App) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, model.SendError("No code provided"))
	}
	tokenResponse := new(model.TokenResponse)
	err := fetchToken(app.GetHTTPClient(), app.GetConfig().SSO.TokenURL, tokenResponse, basicAuth(app.GetConfig()), code)
	if err != nil {
		log.Println(err)
		return c.JSON(http.StatusInternalServerError, model.SendError("Failed to authenticate"))
	}
	session.Write(c, tokenResponse.AccessToken, app.GetConfig().SecureCookies)
	return c.Redirect(http.StatusFound, middleware.ProtectedPage)
}

// Logout clears the session cookie, the protected page will bounce the now
// anonymous browser back to the login page
func Logout(c echo.Context, app application.App) error {
	session.Clear(c, app.GetConfig().SecureCookies)
	return c.Redirect(http.StatusFound, middleware.ProtectedPage)
}

// Check reports cookie presence only, the token is not validated
func Check(c echo.Context) error {
	_, err := session.Read(c)
	return c.JSON(http.StatusOK, &model.CheckResponse{
		Exists: err == nil,
	})
}
