package api

import (
	"log"
	"net/http"

	"github.com/kojsok/eveok-backend/backend/application"
	"github.com/kojsok/eveok-backend/backend/esi"
	"github.com/kojsok/eveok-backend/backend/model"
	"github.com/kojsok/eveok-backend/backend/scan"
	"github.com/kojsok/eveok-backend/backend/session"
	"github.com/labstack/echo/v4"
	uuid "github.com/satori/go.uuid"
)

// SaveScan stores the posted scan result under a fresh opaque id so it can be
// shared by link, scans are public and therefore live in the ungated namespace
func SaveScan(c echo.Context, app application.App) error {
	request := new(model.ScanRequest)
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, model.SendError("Invalid scan payload"))
	}
	if err := c.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, model.SendError("Invalid scan payload"))
	}
	id := uuid.NewV4().String()
	if err := app.GetScanStore().Put(id, request.Data, scan.DefaultTTL); err != nil {
		log.Println(err)
		return c.JSON(http.StatusInternalServerError, model.SendError("Failed to save scan"))
	}
	return c.JSON(http.StatusCreated, &model.ScanResponse{
		ID: id,
	})
}

func GetScan(c echo.Context, app application.App) error {
	id := c.Param("id")
	payload, err := app.GetScanStore().Get(id)
	if err == scan.ErrNotFound {
		return c.JSON(http.StatusNotFound, model.SendError("Scan not found"))
	}
	if err != nil {
		log.Println(err)
		return c.JSON(http.StatusInternalServerError, model.SendError("Failed to load scan"))
	}
	return c.JSON(http.StatusOK, &model.ScanResponse{
		ID:   id,
		Data: payload,
	})
}

// Status proxies the public ESI server status, no token is attached
func Status(c echo.Context, app application.App) error {
	status := new(model.ServerStatus)
	err := esi.Fetch(app.GetHTTPClient(), app.GetConfig().ESIBaseURL+"/status/", status, "")
	if err != nil {
		log.Println(err)
		return c.JSON(http.StatusInternalServerError, model.SendError("Failed to fetch server status"))
	}
	return c.JSON(http.StatusOK, status)
}

// Character returns the character fields for the logged in user without
// echoing the token back
func Character(c echo.Context, app application.App) error {
	token, err := session.Read(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, model.SendError("Unauthorized"))
	}
	verifyResponse := new(model.VerifyResponse)
	err = esi.Fetch(app.GetHTTPClient(), app.GetConfig().SSO.VerifyURL, verifyResponse, token)
	if err != nil {
		log.Println(err)
		return c.JSON(http.StatusInternalServerError, model.SendError("Failed to fetch character"))
	}
	return c.JSON(http.StatusOK, verifyResponse)
}
