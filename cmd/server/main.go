package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/rapsplay/console-rental/internal/config"
	"github.com/rapsplay/console-rental/internal/database"
	"github.com/rapsplay/console-rental/internal/handler"
	"github.com/rapsplay/console-rental/internal/mail"
	"github.com/rapsplay/console-rental/internal/middleware"
	"github.com/rapsplay/console-rental/internal/queue"
	"github.com/rapsplay/console-rental/internal/repository"
	"github.com/rapsplay/console-rental/internal/router"
	queue_publisher "github.com/rapsplay/console-rental/internal/service"
	"github.com/rapsplay/console-rental/internal/sheet"
	"github.com/rapsplay/console-rental/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	store, err := storage.NewLocalStore(cfg.UploadDir, "/images")
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg)
	} else {
		log.Printf("mail: SMTP not configured, outgoing mail disabled")
	}

	authH := handler.NewAuthHandler(cfg, users, tokens, mailer, store)
	bookingH := handler.NewBookingHandler(bookings, users, store, eventPublisher{})
	enquiryH := handler.NewEnquiryHandler(sheet.NewBook(cfg.SheetPath))

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	e.Static("/images", store.BasePath())

	router.RegisterRoutes(e, enquiryH)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// eventPublisher adapts the package-level publish functions to the
// handler.Publisher interface.
type eventPublisher struct{}

func (eventPublisher) PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	return queue_publisher.PublishBookingCreated(ctx, ev)
}

func (eventPublisher) PublishBookingStatus(ctx context.Context, ev queue.BookingStatusEvent) error {
	return queue_publisher.PublishBookingStatus(ctx, ev)
}
