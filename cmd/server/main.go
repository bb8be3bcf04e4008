package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/campus-events/internal/cache"    // Redis-backed cache store
	"github.com/iliyamo/campus-events/internal/config"   // Internal config loader
	"github.com/iliyamo/campus-events/internal/database" // MySQL connection and migrations
	"github.com/iliyamo/campus-events/internal/handler"  // HTTP handlers
	"github.com/iliyamo/campus-events/internal/media"    // External image hosting client
	"github.com/iliyamo/campus-events/internal/queue"    // Registration confirmation consumer
	"github.com/iliyamo/campus-events/internal/repository"
	"github.com/iliyamo/campus-events/internal/router" // Internal router setup
	"github.com/iliyamo/campus-events/internal/service"
)

func main() {
	// Load .env when present; in containers the variables come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ttl := config.LoadCacheTTLConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// The Redis client may be nil when the cache is unreachable; the store
	// then degrades to a pass-through and every read hits MySQL.
	store := cache.NewRedisStore(config.NewRedisClient())

	// Consume registration confirmations in the background. A missing
	// broker only disables the audit log, never the API.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	registrations := repository.NewRegistrationRepo(db)

	uploader := media.NewHTTPUploader(cfg.MediaUploadURL)

	eventSvc := service.NewEventService(events, uploader, store, ttl)
	registrationSvc := service.NewRegistrationService(registrations, events, users, store, service.NewQueueNotifier(), ttl)
	statsSvc := service.NewStatisticsService(events, registrations, store, ttl)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterEvents(e,
		handler.NewEventHandler(eventSvc),
		handler.NewRegistrationHandler(registrationSvc),
		handler.NewStatisticsHandler(statsSvc),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
