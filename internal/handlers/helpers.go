package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ovsyanko/farm_market/internal/repo"
)

const flashCookie = "flash"

// SetFlash stores a one-shot notice for the next view, the way the old
// server-rendered app flashed messages across redirects.
func SetFlash(c echo.Context, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}

// storeError maps store failures to the HTTP boundary. Store errors are
// never fatal, every one of them resolves to a client-visible status.
func storeError(err error) error {
	switch {
	case errors.Is(err, repo.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials, try again.")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
