package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ovsyanko/farm_market/internal/events"
	"github.com/Ovsyanko/farm_market/internal/logging"
	"github.com/Ovsyanko/farm_market/internal/repo"
	"github.com/Ovsyanko/farm_market/internal/service/token"
)

type ForumHandler struct {
	Posts    *repo.ForumRepo
	Producer *events.Producer
}

func (h *ForumHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicForumEvents, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *ForumHandler) Forum(c echo.Context) error {
	posts, err := h.Posts.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
		"flash": PopFlash(c),
	})
}

func (h *ForumHandler) CreatePost(c echo.Context) error {
	userID, ok := token.UserID(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	var req struct {
		Title   string `json:"title"   form:"title"`
		Content string `json:"content" form:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	post, err := h.Posts.Create(c.Request().Context(), userID, req.Title, req.Content)
	if err != nil {
		return storeError(err)
	}

	h.publish(c, map[string]any{
		"type":   "forum_post_created",
		"userID": userID,
		"postID": post.ID,
		"title":  post.Title,
	})

	SetFlash(c, "Forum post added!")
	return c.Redirect(http.StatusSeeOther, "/forum")
}
