package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/kojsok/eveok-backend/backend/config"
	"github.com/kojsok/eveok-backend/backend/middleware"
	"github.com/kojsok/eveok-backend/backend/model"
	"github.com/kojsok/eveok-backend/backend/scan"
	"github.com/kojsok/eveok-backend/backend/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
}

type testApp struct {
	config *config.Config
	scans  scan.Store
}

func (app *testApp) GetHTTPClient() *http.Client {
	return httpClient
}

func (app *testApp) GetConfig() *config.Config {
	return app.config
}

func (app *testApp) GetScanStore() scan.Store {
	return app.scans
}

func newTestConfig() *config.Config {
	return &config.Config{
		Port:          8080,
		SecureCookies: false,
		SSO: config.SSO{
			ClientID:     "some client id",
			ClientSecret: "some client secret",
			CallbackURL:  "http://localhost:8080/auth/callback",
			AuthorizeURL: "http://localhost/authorize",
			TokenURL:     "http://localhost/token",
			VerifyURL:    "http://localhost/verify",
			Scopes:       "publicData",
		},
	}
}

// sso stands in for the identity provider token endpoint, it records the last
// request so the exchange wire format can be asserted
type ssoServer struct {
	server        *httptest.Server
	authorization string
	contentType   string
	form          url.Values
}

func newSSOServer() *ssoServer {
	sso := &ssoServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		sso.authorization = r.Header.Get("Authorization")
		sso.contentType = r.Header.Get("Content-Type")
		r.ParseForm()
		sso.form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&model.TokenResponse{
			AccessToken: "T1",
			TokenType:   "Bearer",
			ExpiresIn:   1200,
		})
	})
	mux.HandleFunc("/token_error", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "400 Bad Request", http.StatusBadRequest)
	})
	sso.server = httptest.NewServer(mux)
	return sso
}

func newContext(method string, target string, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthorizeURL(t *testing.T) {
	//config nil
	location, err := AuthorizeURL(nil, "")
	assert.Equal(t, "", location)
	assert.NotNil(t, err)
	assert.Equal(t, "config is nil", err.Error())

	testConfig := newTestConfig()
	location, err = AuthorizeURL(testConfig, "some state")
	assert.Nil(t, err)
	u, err := url.Parse(location)
	assert.Nil(t, err)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, testConfig.SSO.CallbackURL, q.Get("redirect_uri"))
	assert.Equal(t, testConfig.SSO.ClientID, q.Get("client_id"))
	assert.Equal(t, testConfig.SSO.Scopes, q.Get("scope"))
	assert.Equal(t, "some state", q.Get("state"))
}

func TestFetchToken(t *testing.T) {
	sso := newSSOServer()
	defer sso.server.Close()

	//no http client
	err := fetchToken(nil, "", nil, "", "")
	assert.NotNil(t, err)
	assert.Equal(t, "no http client specified", err.Error())

	//here the request ends up in error after Do
	err = fetchToken(httpClient, "", nil, "", "")
	assert.NotNil(t, err)

	//provider rejects the code
	err = fetchToken(httpClient, sso.server.URL+"/token_error", nil, "", "bad")
	assert.NotNil(t, err)
	exchangeError, ok := err.(*ExchangeError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, exchangeError.StatusCode)
	assert.Equal(t, "token exchange failed with status : 400", err.Error())

	//OK
	resp := new(model.TokenResponse)
	err = fetchToken(httpClient, sso.server.URL+"/token", resp, "some authorization", "abc123")
	assert.Nil(t, err)
	assert.Equal(t, "T1", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 1200, resp.ExpiresIn)
	assert.Equal(t, "Basic some authorization", sso.authorization)
	assert.Equal(t, "application/x-www-form-urlencoded", sso.contentType)
	assert.Equal(t, "authorization_code", sso.form.Get("grant_type"))
	assert.Equal(t, "abc123", sso.form.Get("code"))
}

func TestBasicAuth(t *testing.T) {
	testConfig := newTestConfig()
	decoded, err := base64.StdEncoding.DecodeString(basicAuth(testConfig))
	assert.Nil(t, err)
	assert.Equal(t, "some client id:some client secret", string(decoded))
}

func TestLogin(t *testing.T) {
	app := &testApp{config: newTestConfig()}
	c, rec := newContext(http.MethodGet, "/auth/login")
	err := Login(c, app)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	u, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	assert.Nil(t, err)
	firstState := u.Query().Get("state")
	assert.NotEqual(t, "", firstState)

	//the state nonce must change on every attempt
	c, rec = newContext(http.MethodGet, "/auth/login")
	err = Login(c, app)
	assert.Nil(t, err)
	u, err = url.Parse(rec.Header().Get(echo.HeaderLocation))
	assert.Nil(t, err)
	assert.NotEqual(t, firstState, u.Query().Get("state"))
}

func TestCallbackNoCode(t *testing.T) {
	app := &testApp{config: newTestConfig()}
	c, rec := newContext(http.MethodGet, "/auth/callback")
	err := Callback(c, app)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No code provided"}`, rec.Body.String())
	assert.Equal(t, "", rec.Header().Get("Set-Cookie"))
}

func TestCallback(t *testing.T) {
	sso := newSSOServer()
	defer sso.server.Close()
	testConfig := newTestConfig()
	testConfig.SSO.TokenURL = sso.server.URL + "/token"
	app := &testApp{config: testConfig}

	c, rec := newContext(http.MethodGet, "/auth/callback?code=abc123")
	err := Callback(c, app)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, middleware.ProtectedPage, rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	assert.Equal(t, 1, len(cookies))
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, "T1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	assert.Equal(t, session.CookieMaxAge, cookies[0].MaxAge)

	//the exchange uses the client credentials from the configuration
	expected := base64.StdEncoding.EncodeToString([]byte("some client id:some client secret"))
	assert.Equal(t, "Basic "+expected, sso.authorization)
}

func TestCallbackExchangeFailed(t *testing.T) {
	sso := newSSOServer()
	defer sso.server.Close()
	testConfig := newTestConfig()
	testConfig.SSO.TokenURL = sso.server.URL + "/token_error"
	app := &testApp{config: testConfig}

	c, rec := newContext(http.MethodGet, "/auth/callback?code=bad")
	err := Callback(c, app)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to authenticate"}`, rec.Body.String())
	assert.Equal(t, "", rec.Header().Get("Set-Cookie"))
}

func TestLogout(t *testing.T) {
	app := &testApp{config: newTestConfig()}
	c, rec := newContext(http.MethodGet, "/auth/logout", &http.Cookie{
		Name:  session.CookieName,
		Value: "T1",
	})
	err := Logout(c, app)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, middleware.ProtectedPage, rec.Header().Get(echo.HeaderLocation))
	cookies := rec.Result().Cookies()
	assert.Equal(t, 1, len(cookies))
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestCheck(t *testing.T) {
	//cookie present
	c, rec := newContext(http.MethodGet, "/auth/check", &http.Cookie{
		Name:  session.CookieName,
		Value: "T1",
	})
	err := Check(c)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())

	//cookie absent
	c, rec = newContext(http.MethodGet, "/auth/check")
	err = Check(c)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":false}`, rec.Body.String())
}
