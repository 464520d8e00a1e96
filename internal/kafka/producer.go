package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// TicketEvent is the JSON payload published on every ticket lifecycle
// transition. The ticket reference doubles as the message key so all events
// for one ticket land on the same partition.
type TicketEvent struct {
	Type           string     `json:"type"`
	Reference      string     `json:"reference"`
	TicketID       int64      `json:"ticket_id"`
	FlightID       int64      `json:"flight_id"`
	SeatNumber     string     `json:"seat_number"`
	PassengerID    int64      `json:"passenger_id"`
	PassengerEmail string     `json:"passenger_email,omitempty"`
	Status         string     `json:"status"`
	PricePaidCents int64      `json:"price_paid_cents"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
