package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort         = 8080
	defaultRedisAddr    = "localhost:6379"
	defaultAuthorizeURL = "https://login.eveonline.com/v2/oauth/authorize"
	defaultTokenURL     = "https://login.eveonline.com/v2/oauth/token"
	defaultVerifyURL    = "https://login.eveonline.com/oauth/verify"
	defaultESIBaseURL   = "https://esi.evetech.net/latest"
	defaultScopes       = "publicData"
)

type SSO struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	AuthorizeURL string
	TokenURL     string
	VerifyURL    string
	Scopes       string
}

type Config struct {
	Port          int
	SecureCookies bool
	RedisAddr     string
	RedisDB       int
	ESIBaseURL    string
	SSO           SSO
}

// FromEnv builds the whole configuration once at startup, the SSO client
// credentials and callback URL are mandatory and their absence is a startup
// error, never a per-request one
func FromEnv() (*Config, error) {
	config := &Config{
		Port:          defaultPort,
		SecureCookies: parseBool(os.Getenv("SECURE_COOKIES")),
		RedisAddr:     defaultRedisAddr,
		ESIBaseURL:    defaultESIBaseURL,
		SSO: SSO{
			ClientID:     os.Getenv("EVE_CLIENT_ID"),
			ClientSecret: os.Getenv("EVE_CLIENT_SECRET"),
			CallbackURL:  os.Getenv("EVE_CALLBACK_URL"),
			AuthorizeURL: defaultAuthorizeURL,
			TokenURL:     defaultTokenURL,
			VerifyURL:    defaultVerifyURL,
			Scopes:       defaultScopes,
		},
	}
	var missing []string
	if config.SSO.ClientID == "" {
		missing = append(missing, "EVE_CLIENT_ID")
	}
	if config.SSO.ClientSecret == "" {
		missing = append(missing, "EVE_CLIENT_SECRET")
	}
	if config.SSO.CallbackURL == "" {
		missing = append(missing, "EVE_CALLBACK_URL")
	}
	if len(missing) != 0 {
		return nil, fmt.Errorf("missing required configuration : %v", strings.Join(missing, ", "))
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("incorrect PORT value : %v", v)
		}
		config.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.RedisAddr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("incorrect REDIS_DB value : %v", v)
		}
		config.RedisDB = db
	}
	if v := os.Getenv("EVE_AUTHORIZE_URL"); v != "" {
		config.SSO.AuthorizeURL = v
	}
	if v := os.Getenv("EVE_TOKEN_URL"); v != "" {
		config.SSO.TokenURL = v
	}
	if v := os.Getenv("EVE_VERIFY_URL"); v != "" {
		config.SSO.VerifyURL = v
	}
	if v := os.Getenv("EVE_SCOPES"); v != "" {
		config.SSO.Scopes = v
	}
	if v := os.Getenv("ESI_BASE_URL"); v != "" {
		config.ESIBaseURL = v
	}
	return config, nil
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	}
	return false
}
