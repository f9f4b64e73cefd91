package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Ovsyanko/farm_market/internal/models"
)

func cropCount(env *testEnv) int64 {
	var count int64
	env.DB.Model(&models.Crop{}).Count(&count)
	return count
}

func TestListCrop_AsFarmer(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.registerUser("ram", "ram@example.com", "password", models.RoleFarmer)

	form := url.Values{
		"name":     {"Wheat"},
		"quantity": {"50kg"},
		"price":    {"20.5"},
	}
	rec, c := env.doFormRequest(http.MethodPost, "/list_crop", form)
	c.Set("userID", farmer.ID)
	c.Set("role", models.RoleFarmer)

	require.NoError(t, env.C.ListCrop(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	var crop models.Crop
	require.NoError(t, env.DB.First(&crop).Error)
	require.Equal(t, "Wheat", crop.Name)
	require.Equal(t, "50kg", crop.Quantity)
	require.Equal(t, 20.5, crop.Price)
	require.Equal(t, farmer.ID, crop.FarmerID)
}

func TestListCrop_AsBuyerIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.registerUser("shyam", "shyam@example.com", "password", models.RoleBuyer)

	form := url.Values{
		"name":     {"Wheat"},
		"quantity": {"50kg"},
		"price":    {"20.5"},
	}
	rec, c := env.doFormRequest(http.MethodPost, "/list_crop", form)
	c.Set("userID", buyer.ID)
	c.Set("role", models.RoleBuyer)

	require.NoError(t, env.C.ListCrop(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	require.EqualValues(t, 0, cropCount(env))
}

func TestListCrop_InvalidPrice(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.registerUser("ram", "ram@example.com", "password", models.RoleFarmer)

	for _, price := range []string{"abc", "-5", ""} {
		form := url.Values{
			"name":     {"Wheat"},
			"quantity": {"50kg"},
			"price":    {price},
		}
		_, c := env.doFormRequest(http.MethodPost, "/list_crop", form)
		c.Set("userID", farmer.ID)
		c.Set("role", models.RoleFarmer)

		err := env.C.ListCrop(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError for price %q", price)
		require.Equal(t, http.StatusBadRequest, he.Code)
	}
	require.EqualValues(t, 0, cropCount(env))
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.registerUser("ram", "ram@example.com", "password", models.RoleFarmer)
	buyer := env.registerUser("shyam", "shyam@example.com", "password", models.RoleBuyer)

	form := url.Values{
		"name":     {"Wheat"},
		"quantity": {"50kg"},
		"price":    {"20.5"},
	}
	_, cCreate := env.doFormRequest(http.MethodPost, "/list_crop", form)
	cCreate.Set("userID", farmer.ID)
	cCreate.Set("role", models.RoleFarmer)
	require.NoError(t, env.C.ListCrop(cCreate))

	rec, c := env.doFormRequest(http.MethodGet, "/dashboard", nil)
	c.Set("userID", buyer.ID)
	c.Set("role", models.RoleBuyer)

	require.NoError(t, env.C.Dashboard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Crops []models.Crop `json:"crops"`
		Role  string        `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Crops, 1)
	require.Equal(t, "Wheat", resp.Crops[0].Name)
	require.Equal(t, farmer.ID, resp.Crops[0].FarmerID)
	require.Equal(t, models.RoleBuyer, resp.Role)
}
