package main

import (
	"context"
	"log"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Ovsyanko/farm_market/internal/config"
	"github.com/Ovsyanko/farm_market/internal/es"
	"github.com/Ovsyanko/farm_market/internal/events"
	"github.com/Ovsyanko/farm_market/internal/handlers"
	"github.com/Ovsyanko/farm_market/internal/logging"
	loggingmw "github.com/Ovsyanko/farm_market/internal/middleware/logging"
	"github.com/Ovsyanko/farm_market/internal/repo"
	"github.com/Ovsyanko/farm_market/internal/service/token"
	httpserver "github.com/Ovsyanko/farm_market/internal/transport/http"
)

func main() {
	cfg := config.LoadConfig()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	var esClient *elasticsearch.Client
	if cfg.ES_URL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
	}

	session := &token.Service{
		Tokens:        &repo.TokenRepo{DB: db},
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}

	deps := &httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			Users:    &repo.UserRepo{DB: db},
			Session:  session,
			Producer: producer,
		},
		CropHandler: &handlers.CropHandler{
			Crops:    &repo.CropRepo{DB: db},
			Producer: producer,
			ES:       esClient,
			Index:    cfg.ES_INDEX,
		},
		ForumHandler: &handlers.ForumHandler{
			Posts:    &repo.ForumRepo{DB: db},
			Producer: producer,
		},
		WeatherHandler: handlers.NewWeatherHandler(cfg.WeatherAPIKey, cfg.WeatherCity),
		SearchHandler:  handlers.NewSearchHandler(esClient, cfg.ES_INDEX),
		Session:        session,
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
