package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Klimentov1992/flightbooking/api"
	"github.com/Klimentov1992/flightbooking/config"
	"github.com/Klimentov1992/flightbooking/internal/bootstrap"
	"github.com/Klimentov1992/flightbooking/internal/cache"
	"github.com/Klimentov1992/flightbooking/internal/kafka"
	"github.com/Klimentov1992/flightbooking/internal/repository"
	"github.com/Klimentov1992/flightbooking/internal/service/booking"
	"github.com/Klimentov1992/flightbooking/internal/service/checkin"
	"github.com/Klimentov1992/flightbooking/internal/service/flights"
	"github.com/Klimentov1992/flightbooking/internal/service/payment"
	"github.com/Klimentov1992/flightbooking/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache, time.Duration(cfg.Catalog.FlightsCacheTTL)*time.Second)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	paymentService := payment.NewPaymentService(paymentRepo, bookingRepo, payment.NewStubGateway(), producer, cfg.Kafka.BookingTopic)
	checkInService := checkin.NewCheckInService(bookingRepo, producer, cfg.Kafka.BookingTopic)
	userService := users.NewUserService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute)

	router := api.NewRouter(
		cfg.Auth.JWTSecret,
		api.NewAuthHandler(userService),
		api.NewFlightHandler(flightService),
		api.NewBookingHandler(bookingService),
		api.NewPaymentHandler(paymentService),
		api.NewCheckInHandler(checkInService),
	)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
