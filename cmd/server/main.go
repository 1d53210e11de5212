package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tickettango/api/internal/config"
	"github.com/tickettango/api/internal/handler"
	"github.com/tickettango/api/internal/middleware"
	"github.com/tickettango/api/internal/queue"
	"github.com/tickettango/api/internal/repository"
	"github.com/tickettango/api/internal/router"
	"github.com/tickettango/api/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	// Select the backend and connect.  The decision is made exactly once
	// here and carried inside the store for the process lifetime.  No
	// working store means no traffic: fail hard.
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("store: connect failed: %v", err)
	}
	defer st.Close()
	log.Printf("store: connected (backend=%s)", st.Backend())

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := st.CreateSchema(startupCtx); err != nil {
		log.Fatalf("store: create schema failed: %v", err)
	}
	if err := st.SeedIfEmpty(startupCtx); err != nil {
		log.Fatalf("store: seed failed: %v", err)
	}

	// Redis is optional: when unreachable, caching and rate limiting
	// degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(st)
	events := repository.NewEventRepo(st)
	bookings := repository.NewBookingRepo(st)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterEvents(e, handler.NewEventHandler(events), cache)
	router.RegisterBookings(e, handler.NewBookingHandler(bookings), cfg.JWTSecret)

	// The consumer only runs when a broker is configured; it reconnects
	// on its own and never takes the server down.
	if url := queue.BrokerURL(); url != "" {
		go queue.StartBookingConsumer(url)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	// Block until asked to stop, then drain in-flight requests before the
	// deferred store teardown runs.
	stop, stopCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopCancel()
	<-stop.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
