package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/vkozyr/busterminal/config"
	"github.com/vkozyr/busterminal/internal/kafka"
	"github.com/vkozyr/busterminal/internal/notify"
	"github.com/vkozyr/busterminal/internal/repository"
	"github.com/vkozyr/busterminal/internal/service/reservation"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	ticketRepo := repository.NewTicketRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	reservationService := reservation.NewReservationService(
		ticketRepo,
		flightRepo,
		passengerRepo,
		producer,
		cfg.Kafka.TicketEventsTopic,
		reservation.WithHold(time.Duration(cfg.Booking.HoldHours)*time.Hour),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TicketEventsTopic)
	defer consumer.Close()

	sender := notify.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.TicketEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return sender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepMinutes := cfg.Worker.ExpirationSweepMinutes
	if sweepMinutes <= 0 {
		sweepMinutes = 10
	}
	expireTicker := time.NewTicker(time.Duration(sweepMinutes) * time.Minute)
	defer expireTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-expireTicker.C:
			expired, err := reservationService.ExpireOverdueTickets(ctx)
			if err != nil {
				log.Printf("expire tickets error: %v", err)
				continue
			}
			if len(expired) > 0 {
				log.Printf("expired %d tickets", len(expired))
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
