package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is published on every booking lifecycle transition.
type BookingEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	BookingID   int       `json:"booking_id"`
	CustomerID  int       `json:"customer_id"`
	FlightID    int       `json:"flight_id"`
	Email       string    `json:"email"`
	Price       float64   `json:"price"`
	Cancelled   bool      `json:"cancelled"`
	BookingDate time.Time `json:"booking_date"`
}

type Producer struct {
	brokers []string
}

func NewProducer(brokers []string) *Producer {
	return &Producer{brokers: brokers}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	writer := &kafka.Writer{Addr: kafka.TCP(p.brokers...), Topic: topic, Balancer: &kafka.LeastBytes{}}
	defer writer.Close()

	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data})
}
