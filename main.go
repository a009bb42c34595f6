package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/kojsok/eveok-backend/backend/application"
	"github.com/kojsok/eveok-backend/backend/config"
	"github.com/kojsok/eveok-backend/backend/handlers/api"
	"github.com/kojsok/eveok-backend/backend/handlers/auth"
	"github.com/kojsok/eveok-backend/backend/handlers/user"
	"github.com/kojsok/eveok-backend/backend/middleware"
	"github.com/kojsok/eveok-backend/backend/scan"
	"github.com/labstack/echo/v4"
	mw "github.com/labstack/echo/v4/middleware"
	"gopkg.in/go-playground/validator.v9"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[eveok] starting on :%v\n", cfg.Port)
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	var httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}
	var app application.App = &Server{
		Config:     cfg,
		ScanStore:  scan.NewRedisStore(redisClient),
		HTTPClient: httpClient,
	}
	e := echo.New()
	UseCommonMiddleware(e)
	e.Use(middleware.RequireSession)
	routes(e, app)
	e.Logger.Fatal(e.Start(":" + strconv.Itoa(cfg.Port)))
}

func routes(e *echo.Echo, app application.App) {
	e.GET("/auth/login", func(c echo.Context) error {
		return auth.Login(c, app)
	})
	e.GET("/auth/callback", func(c echo.Context) error {
		return auth.Callback(c, app)
	})
	e.GET("/auth/logout", func(c echo.Context) error {
		return auth.Logout(c, app)
	})
	e.GET("/auth/check", auth.Check)

	e.GET("/user", func(c echo.Context) error {
		return user.Get(c, app)
	})

	e.POST("/api/scan", func(c echo.Context) error {
		return api.SaveScan(c, app)
	})
	e.GET("/api/scan/:id", func(c echo.Context) error {
		return api.GetScan(c, app)
	})
	e.GET("/api/status", func(c echo.Context) error {
		return api.Status(c, app)
	})
	e.GET("/api/character", func(c echo.Context) error {
		return api.Character(c, app)
	})

	e.Static("/static", "static")
}

type Server struct {
	Config     *config.Config
	ScanStore  scan.Store
	HTTPClient *http.Client
}

func (s *Server) GetHTTPClient() *http.Client {
	return s.HTTPClient
}

func (s *Server) GetConfig() *config.Config {
	return s.Config
}

func (s *Server) GetScanStore() scan.Store {
	return s.ScanStore
}

// middleware for validation
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func UseCommonMiddleware(e *echo.Echo) {
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mw.LoggerWithConfig(mw.LoggerConfig{
		Format: "${remote_ip} - - ${time_rfc3339_nano} \"${method} ${uri} ${protocol}\" ${status} ${bytes_out} \"${referer}\" \"${user_agent}\"\n",
	}))
	e.Use(mw.Recover())
}
