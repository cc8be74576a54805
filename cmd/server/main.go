package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cadalt0/Space/internal/config"
	"github.com/cadalt0/Space/internal/database"
	"github.com/cadalt0/Space/internal/handler"
	"github.com/cadalt0/Space/internal/middleware"
	"github.com/cadalt0/Space/internal/queue"
	"github.com/cadalt0/Space/internal/repository"
	"github.com/cadalt0/Space/internal/router"
)

func main() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, cfg.DefaultStakeAddress); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepo(db)
	spaces := repository.NewSpaceRepo(db, cfg.DefaultStakeAddress)
	shops := repository.NewShopRepo(db)
	items := repository.NewLendItemRepo(db)
	requests := repository.NewRequestRepo(db)
	hangouts := repository.NewHangoutRepo(db)

	e := echo.New()
	e.HideBanner = true

	// Redis-backed middleware degrades to pass-through when the client is
	// nil (Redis absent or unreachable).
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	e.Use(middleware.Identity(cfg.JWTSecret))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e, router.Handlers{
		SNS:      handler.NewSNSHandler(users),
		Spaces:   handler.NewSpaceHandler(spaces, shops),
		Shops:    handler.NewShopHandler(shops, spaces),
		Items:    handler.NewLendItemHandler(items, spaces),
		Requests: handler.NewRequestHandler(requests, spaces),
		Hangouts: handler.NewHangoutHandler(hangouts, spaces),
		Health:   handler.NewHealthHandler(db),
	})

	// Activity log consumer runs for the life of the process and reconnects
	// on broker failure; it is a no-op when no broker is configured.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
