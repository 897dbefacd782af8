package main

import (
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"tours_backend/internal/app/router"
	"tours_backend/internal/config"
	authadapters "tours_backend/internal/feature/auth/adapters"
	authhandler "tours_backend/internal/feature/auth/transport/handler"
	authusecase "tours_backend/internal/feature/auth/usecase"
	bookingadapters "tours_backend/internal/feature/bookings/adapters"
	bookinghandler "tours_backend/internal/feature/bookings/transport/handler"
	bookingusecase "tours_backend/internal/feature/bookings/usecase"
	reviewadapters "tours_backend/internal/feature/reviews/adapters"
	reviewhandler "tours_backend/internal/feature/reviews/transport/handler"
	reviewusecase "tours_backend/internal/feature/reviews/usecase"
	touradapters "tours_backend/internal/feature/tours/adapters"
	tourhandler "tours_backend/internal/feature/tours/transport/handler"
	tourusecase "tours_backend/internal/feature/tours/usecase"
	"tours_backend/internal/platform/cache"
	platformdb "tours_backend/internal/platform/db"
	"tours_backend/internal/platform/mail"
	platformredis "tours_backend/internal/platform/redis"
	"tours_backend/internal/platform/token"
	"tours_backend/internal/shared/ratelimiter"
)

const statsCacheTTL = 5 * time.Minute

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := platformdb.Open(cfg.Database.DSN, cfg.Database.RunMigrations)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis is optional. A nil client turns the caching decorator into a
	// pass-through.
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		if tmp, err := platformredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
			slog.Warn("redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	// Repositories
	userRepo := authadapters.NewUserRepository(db)
	tourRepo := touradapters.NewTourRepository(db)
	cachedTourRepo := cache.NewCachingTourRepository(rdb, statsCacheTTL, tourRepo, "tours")
	reviewRepo := reviewadapters.NewReviewRepository(db)
	bookingRepo := bookingadapters.NewBookingRepository(db)

	// Platform services
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.Expiration)
	mailer := mail.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	checkout := bookingadapters.NewLocalCheckout(cfg.Server.BaseURL)

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, mailer, cfg.Reset.TokenTTL, cfg.Server.BaseURL)
	userUC := authusecase.NewUserUsecase(userRepo)
	tourUC := tourusecase.NewTourUsecase(cachedTourRepo)
	reviewUC := reviewusecase.NewReviewUsecase(reviewRepo, cachedTourRepo)
	bookingUC := bookingusecase.NewBookingUsecase(bookingRepo, cachedTourRepo, checkout)

	// Handlers
	handlers := router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC),
		Users:    authhandler.NewUserHandler(userUC, authUC),
		Tours:    tourhandler.NewTourHandler(tourUC),
		Reviews:  reviewhandler.NewReviewHandler(reviewUC),
		Bookings: bookinghandler.NewBookingHandler(bookingUC),
	}

	limits := router.Limits{
		Global: ratelimiter.PerMinute(cfg.RateLimit.Global),
		Auth:   ratelimiter.PerMinute(cfg.RateLimit.Auth),
	}

	r := router.NewRouter(handlers, authUC, limits)

	if err := r.Run(cfg.Server.Address); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
