package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

// WeatherHandler is a stateless pass-through to the weatherapi.com current
// conditions endpoint. No business rules live here.
type WeatherHandler struct {
	Client *http.Client
	APIKey string
	City   string
}

func NewWeatherHandler(apiKey, city string) *WeatherHandler {
	return &WeatherHandler{
		Client: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		APIKey: apiKey,
		City:   city,
	}
}

func (h *WeatherHandler) Weather(c echo.Context) error {
	reqURL := fmt.Sprintf(
		"http://api.weatherapi.com/v1/current.json?key=%s&q=%s",
		url.QueryEscape(h.APIKey), url.QueryEscape(h.City),
	)

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, reqURL, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("weather api status: %d", resp.StatusCode))
	}

	var result struct {
		Current struct {
			TempC     float64 `json:"temp_c"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"temperature": result.Current.TempC,
		"condition":   result.Current.Condition.Text,
	})
}
