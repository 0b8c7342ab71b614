package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/logger"
	"github.com/iliyamo/hotel-reservation/internal/mailer"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "hotel-reservation"})
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "hotel-reservation"})
	loc, _ := cfg.Location()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrate schema")
		}
	}

	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting in memory")
	}
	var redisPing func(context.Context) error
	if rdb != nil {
		defer rdb.Close()
		redisPing = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// ---- storage ----
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	reports := repository.NewReportRepo(db)

	// ---- services ----
	var events service.EventPublisher
	if cfg.AMQP.URL != "" {
		events = queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, log)
	}
	workflow := service.NewReservationService(repository.NewStore(db), events, log, loc)
	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	accounts := service.NewUserService(users, cfg.BcryptCost, log)
	mail := mailer.New(cfg.SMTP)

	consumerDone := make(chan struct{})
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	if cfg.AMQP.URL != "" && cfg.AMQP.NotifyGuests {
		c := queue.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, mail, log)
		go func() {
			defer close(consumerDone)
			if err := c.Run(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event consumer stopped")
			}
		}()
	} else {
		close(consumerDone)
	}

	// ---- http ----
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: func() string { return uuid.NewString() }}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.RequestLogger(log))

	opts := router.Options{
		JWTSecret:        cfg.JWTSecret,
		RequireStaffAuth: cfg.RequireStaffAuth,
		Limit:            middleware.NewRateLimiter(cfg.RateLimit, rdb, log).Middleware(),
	}
	roomHandler := handler.NewRoomHandler(rooms)
	resHandler := handler.NewReservationHandler(reservations, workflow)
	router.RegisterRoutes(e, handler.NewHealthHandler(db, redisPing))
	router.RegisterAuth(e, handler.NewAuthHandler(auth), opts)
	router.RegisterGuest(e, roomHandler, resHandler, opts)
	router.RegisterStaff(e, router.StaffHandlers{
		Rooms:        roomHandler,
		Reservations: resHandler,
		Users:        handler.NewUserHandler(accounts),
		Reports:      handler.NewReportHandler(reports),
		Contact:      handler.NewContactHandler(mail, log),
	}, opts)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	stopConsumer()
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("event consumer did not stop in time")
	}
}

