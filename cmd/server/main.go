package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env file loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/playbox/game-rental/internal/config"
	"github.com/playbox/game-rental/internal/database"
	"github.com/playbox/game-rental/internal/handler"
	"github.com/playbox/game-rental/internal/middleware"
	"github.com/playbox/game-rental/internal/queue"
	"github.com/playbox/game-rental/internal/repository"
	"github.com/playbox/game-rental/internal/router"
	"github.com/playbox/game-rental/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories over the shared pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	catalog := repository.NewCatalogRepo(db)
	orders := repository.NewOrderRepo(db)
	tracking := repository.NewTrackingRepo(db)

	// Core services.
	authSvc := service.NewAuthService(users)
	orderSvc := service.NewOrderService(db, catalog, orders, tracking)
	trackingSvc := service.NewTrackingService(db, tracking)

	// Redis is optional; rate limiting and catalog caching degrade
	// gracefully when it is absent.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and catalog cache disabled")
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, authSvc, users, tokens),
		Profile:   handler.NewProfileHandler(cfg, users),
		Catalog:   handler.NewCatalogHandler(catalog),
		Orders:    handler.NewOrderHandler(orderSvc, orders),
		Tracking:  handler.NewTrackingHandler(trackingSvc, tracking),
		UserAdmin: handler.NewUserAdminHandler(users),
	}, cfg.JWTSecret, cacheMW)

	// Background consumer logging placed orders; reconnects on its own.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
