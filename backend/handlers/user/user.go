package user

import (
	"log"
	"net/http"

	"github.com/kojsok/eveok-backend/backend/application"
	"github.com/kojsok/eveok-backend/backend/esi"
	"github.com/kojsok/eveok-backend/backend/model"
	"github.com/kojsok/eveok-backend/backend/session"
	"github.com/labstack/echo/v4"
)

// Get proxies the verify endpoint for the character behind the session cookie
// and echoes the bearer token back for client side ESI calls
func Get(c echo.Context, app application.App) error {
	token, err := session.Read(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, model.SendError("Unauthorized"))
	}
	verifyResponse := new(model.VerifyResponse)
	err = esi.Fetch(app.GetHTTPClient(), app.GetConfig().SSO.VerifyURL, verifyResponse, token)
	if err != nil {
		log.Println(err)
		return c.JSON(http.StatusInternalServerError, model.SendError("Failed to fetch user data"))
	}
	return c.JSON(http.StatusOK, &model.UserResponse{
		Token:     token,
		Character: *verifyResponse,
	})
}
