package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-reservation/internal/booking"
	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/database"
	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-reservation/internal/service"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use env vars

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Admission engine over the transactional store.  Every location
	// currently shares one weekly schedule.
	hours := cfg.DiningHours()
	hoursFor := func(uint64) timeslot.Hours { return hours }
	engine := booking.NewEngine(repository.NewBookingStore(db), booking.WithHours(hoursFor))

	// Repositories for the read/admin paths.
	locations := repository.NewLocationRepository(db)
	rooms := repository.NewRoomRepository(db)
	customers := repository.NewCustomerRepository(db)
	reservations := repository.NewReservationRepository(db)
	blocks := repository.NewBlockRepository(db)
	audit := repository.NewAuditRepository(db)
	newsletter := repository.NewNewsletterRepository(db)
	admins := repository.NewAdminRepository(db)

	// Handlers.
	health := handler.NewHealthHandler(db)
	public := handler.NewPublicHandler(engine, locations, queue_publisher.PublishReservationConfirmed)
	news := handler.NewNewsletterHandler(newsletter)
	adminAuth := handler.NewAdminAuthHandler(admins, cfg)
	adminRes := handler.NewAdminReservationHandler(engine, reservations)
	adminBlocks := handler.NewAdminBlockHandler(blocks, rooms)
	adminDash := handler.NewAdminDashboardHandler(locations, rooms, reservations, audit, hoursFor)
	adminCust := handler.NewAdminCustomerHandler(customers)

	// Background consumer logs confirmed reservations from the broker.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	// Redis is optional: without it the public routes run unlimited
	// and uncached.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and response cache disabled")
	}
	publicMW := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}

	router.RegisterHealth(e, health)
	router.RegisterPublic(e, public, news, publicMW...)
	router.RegisterAdmin(e, cfg.JWTSecret, adminAuth, adminRes, adminBlocks, adminDash, adminCust)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
