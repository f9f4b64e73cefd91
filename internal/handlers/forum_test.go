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

func TestCreatePost_VisibleToOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	author := env.registerUser("ram", "ram@example.com", "password", models.RoleFarmer)
	reader := env.registerUser("shyam", "shyam@example.com", "password", models.RoleBuyer)

	form := url.Values{
		"title":   {"Hi"},
		"content": {"Hello"},
	}
	rec, c := env.doFormRequest(http.MethodPost, "/forum", form)
	c.Set("userID", author.ID)
	c.Set("role", author.Role)

	require.NoError(t, env.F.CreatePost(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/forum", rec.Header().Get(echo.HeaderLocation))

	recList, cList := env.doFormRequest(http.MethodGet, "/forum", nil)
	cList.Set("userID", reader.ID)
	cList.Set("role", reader.Role)

	require.NoError(t, env.F.Forum(cList))
	require.Equal(t, http.StatusOK, recList.Code)

	var resp struct {
		Posts []models.ForumPost `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 1)
	require.Equal(t, "Hi", resp.Posts[0].Title)
	require.Equal(t, author.ID, resp.Posts[0].UserID)
}

func TestCreatePost_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	author := env.registerUser("ram", "ram@example.com", "password", models.RoleFarmer)

	form := url.Values{
		"title":   {""},
		"content": {"Hello"},
	}
	_, c := env.doFormRequest(http.MethodPost, "/forum", form)
	c.Set("userID", author.ID)
	c.Set("role", author.Role)

	err := env.F.CreatePost(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)

	var count int64
	env.DB.Model(&models.ForumPost{}).Count(&count)
	require.EqualValues(t, 0, count)
}
