package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Farm Market: connecting farmers and buyers",
		"flash":   PopFlash(c),
	})
}
