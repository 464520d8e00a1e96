package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkozyr/busterminal/api"
	"github.com/vkozyr/busterminal/config"
	"github.com/vkozyr/busterminal/internal/bootstrap"
	"github.com/vkozyr/busterminal/internal/cache"
	"github.com/vkozyr/busterminal/internal/kafka"
	"github.com/vkozyr/busterminal/internal/repository"
	"github.com/vkozyr/busterminal/internal/service/passengers"
	"github.com/vkozyr/busterminal/internal/service/reports"
	"github.com/vkozyr/busterminal/internal/service/reservation"
	"github.com/vkozyr/busterminal/internal/service/routes"
	"github.com/vkozyr/busterminal/internal/service/schedule"
)

func main() {
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	stopRepo := repository.NewStopRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	routeService := routes.NewRouteService(routeRepo, stopRepo)
	flightService := schedule.NewFlightService(flightRepo, ticketRepo, redisCache)
	passengerService := passengers.NewPassengerService(passengerRepo)
	reservationService := reservation.NewReservationService(
		ticketRepo,
		flightRepo,
		passengerRepo,
		producer,
		cfg.Kafka.TicketEventsTopic,
		reservation.WithHold(time.Duration(cfg.Booking.HoldHours)*time.Hour),
	)
	reportService := reports.NewReportService(reportRepo, routeService)

	handlers := &api.Handlers{
		Stops:      api.NewStopHandler(stopRepo),
		Routes:     api.NewRouteHandler(routeService),
		Flights:    api.NewFlightHandler(flightService),
		Passengers: api.NewPassengerHandler(passengerService),
		Tickets:    api.NewTicketHandler(reservationService),
		Reports:    api.NewReportHandler(reportService),
	}

	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
