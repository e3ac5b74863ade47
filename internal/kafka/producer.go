package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/segmentio/kafka-go"
)

// BookingEvent is published on every booking lifecycle transition:
// booking_created, booking_cancelled, payment_completed,
// checkin_completed.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	UserID     int64     `json:"user_id"`
	FlightID   int64     `json:"flight_id"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingEventFrom builds the event payload for a booking transition.
// The notification address is the lead passenger's email.
func BookingEventFrom(eventType string, b *domain.Booking) BookingEvent {
	event := BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		UserID:     b.UserID,
		FlightID:   b.FlightID,
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		OccurredAt: time.Now(),
	}
	if len(b.Passengers) > 0 {
		event.Email = b.Passengers[0].Email
	}
	return event
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
