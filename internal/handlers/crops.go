package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Ovsyanko/farm_market/internal/events"
	"github.com/Ovsyanko/farm_market/internal/logging"
	"github.com/Ovsyanko/farm_market/internal/models"
	"github.com/Ovsyanko/farm_market/internal/repo"
	"github.com/Ovsyanko/farm_market/internal/service/search"
	"github.com/Ovsyanko/farm_market/internal/service/token"
	"github.com/Ovsyanko/farm_market/internal/util"
)

type CropHandler struct {
	Crops    *repo.CropRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *CropHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCropEvents, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Dashboard lists every crop to any authenticated user together with the
// caller's own role, so the client knows whether to offer the listing form.
func (h *CropHandler) Dashboard(c echo.Context) error {
	role, _ := token.Role(c)

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, crops, err := h.Crops.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"crops": crops,
		"role":  role,
		"flash": PopFlash(c),
		"meta": echo.Map{
			"page":     page,
			"size":     limit,
			"total":    total,
			"has_prev": page > 1,
			"has_next": int64(offset+limit) < total,
		},
	})
}

// ListCrop creates a listing for the calling farmer. A non-farmer request
// is not an error: it creates nothing and lands back on the dashboard.
func (h *CropHandler) ListCrop(c echo.Context) error {
	role, _ := token.Role(c)
	if role != models.RoleFarmer {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	userID, ok := token.UserID(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	var req struct {
		Name     string `json:"name"     form:"name"`
		Quantity string `json:"quantity" form:"quantity"`
		Price    string `json:"price"    form:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil || price < 0 {
		return storeError(repo.ErrInvalidInput)
	}

	crop, err := h.Crops.Create(c.Request().Context(), userID, req.Name, req.Quantity, price)
	if err != nil {
		return storeError(err)
	}

	if h.ES != nil {
		if err := search.Index(c.Request().Context(), h.ES, h.Index, *crop); err != nil {
			logging.FromContext(c.Request().Context()).Error("crop index failed", "crop_id", crop.ID, "error", err)
		}
	}

	h.publish(c, map[string]any{
		"type":   "crop_listed",
		"userID": userID,
		"cropID": crop.ID,
		"name":   crop.Name,
	})

	SetFlash(c, "Crop listed successfully!")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}
