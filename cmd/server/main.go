package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/aframi/cinema-storefront/internal/cart"
	"github.com/aframi/cinema-storefront/internal/config"
	"github.com/aframi/cinema-storefront/internal/database"
	"github.com/aframi/cinema-storefront/internal/handler"
	"github.com/aframi/cinema-storefront/internal/middleware"
	"github.com/aframi/cinema-storefront/internal/queue"
	"github.com/aframi/cinema-storefront/internal/repository"
	"github.com/aframi/cinema-storefront/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		// Carts and rate limits both live in Redis; without it the
		// storefront cannot serve shoppers.
		log.Fatal("redis unavailable")
	}
	defer rdb.Close()

	movies := repository.NewMovieRepo(db)
	theaters := repository.NewTheaterRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	snacks := repository.NewSnackRepo(db)
	carts := cart.NewStore(rdb, time.Duration(cfg.CartTTLMin)*time.Minute)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterSession(e, handler.NewSessionHandler(cfg.SessionSecret, cfg.SessionTTLMin))
	router.RegisterPublic(e, handler.NewBrowseHandler(movies, theaters, showtimes, snacks))

	storefront := handler.NewStorefrontHandler(movies, theaters, showtimes, snacks, carts, cfg.AMQPURL)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterStorefront(e, storefront, cfg.SessionSecret, limiter)

	// Order handoff consumer; a no-op when RABBITMQ_URL is unset.
	go queue.StartOrderConsumer(cfg.AMQPURL)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
