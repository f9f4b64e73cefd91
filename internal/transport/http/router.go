package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ovsyanko/farm_market/internal/handlers"
	"github.com/Ovsyanko/farm_market/internal/service/token"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	CropHandler    *handlers.CropHandler
	ForumHandler   *handlers.ForumHandler
	WeatherHandler *handlers.WeatherHandler
	SearchHandler  *handlers.SearchHandler
	Session        *token.Service
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/", handlers.Home)

	e.GET("/register", d.AuthHandler.RegisterForm)
	e.POST("/register", d.AuthHandler.Register)
	e.GET("/login", d.AuthHandler.LoginForm)
	e.POST("/login", d.AuthHandler.Login)

	e.GET("/weather", d.WeatherHandler.Weather)
	e.GET("/search", d.SearchHandler.Search)

	private := e.Group("", d.Session.RequireAuth)
	private.GET("/dashboard", d.CropHandler.Dashboard)
	private.POST("/list_crop", d.CropHandler.ListCrop)
	private.GET("/forum", d.ForumHandler.Forum)
	private.POST("/forum", d.ForumHandler.CreatePost)
	private.GET("/logout", d.AuthHandler.Logout)
}
