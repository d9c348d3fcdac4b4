package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/suntravels/callcenter/internal/availability"
	"github.com/suntravels/callcenter/internal/config"
	"github.com/suntravels/callcenter/internal/database"
	"github.com/suntravels/callcenter/internal/handler"
	"github.com/suntravels/callcenter/internal/middleware"
	"github.com/suntravels/callcenter/internal/queue"
	"github.com/suntravels/callcenter/internal/repository"
	"github.com/suntravels/callcenter/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	repo := repository.NewContractRepo(db)
	engine := availability.NewEngine(repo)
	h := handler.NewContractHandler(repo, engine, availability.SystemClock{})

	// Redis is optional; a nil client turns cache and rate limiting into
	// pass-through middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Contract lifecycle events are consumed in the background; the
	// consumer reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartContractConsumer(); err != nil {
			log.Printf("contract consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterContracts(e, h, cacheMW, rateMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
