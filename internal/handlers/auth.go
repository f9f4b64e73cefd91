package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ovsyanko/farm_market/internal/events"
	"github.com/Ovsyanko/farm_market/internal/logging"
	"github.com/Ovsyanko/farm_market/internal/models"
	"github.com/Ovsyanko/farm_market/internal/repo"
	"github.com/Ovsyanko/farm_market/internal/service/token"
)

type AuthHandler struct {
	Users    *repo.UserRepo
	Session  *token.Service
	Producer *events.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"flash":  PopFlash(c),
		"fields": []string{"username", "email", "password", "user_type"},
		"roles":  []string{models.RoleFarmer, models.RoleBuyer},
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username string `json:"username"  form:"username"`
		Email    string `json:"email"     form:"email"`
		Password string `json:"password"  form:"password"`
		UserType string `json:"user_type" form:"user_type"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Users.Create(c.Request().Context(), req.Username, req.Email, req.Password, req.UserType)
	if err != nil {
		return storeError(err)
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
		"role":     user.Role,
	})

	SetFlash(c, "Registration successful! Please log in.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"flash":  PopFlash(c),
		"fields": []string{"email", "password"},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"    form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Users.FindByCredentials(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return storeError(err)
	}

	if err := h.Session.Establish(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Session.Terminate(c); err != nil {
		logging.FromContext(c.Request().Context()).Error("refresh revoke failed", "error", err)
	}
	return c.Redirect(http.StatusFound, "/")
}
