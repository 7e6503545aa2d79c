package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/railbook/railbook/internal/domain"
	"github.com/railbook/railbook/internal/kafka"
)

// EventPublisher defines the interface for publishing booking events
type EventPublisher interface {
	// PublishTicketPurchased publishes a ticket purchased event
	PublishTicketPurchased(ctx context.Context, booking *domain.Booking) error

	// PublishTicketCancelled publishes a booking cancelled event
	PublishTicketCancelled(ctx context.Context, booking *domain.Booking) error

	// PublishSeatChanged publishes a seat reassignment event
	PublishSeatChanged(ctx context.Context, booking *domain.Booking) error

	// Close closes the event publisher
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer    *kafka.Producer
	topic       string
	serviceName string
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Brokers     []string
	Topic       string
	ServiceName string
	ClientID    string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(ctx context.Context, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("event publisher config is required")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "ticket-events"
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "railbook"
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "railbook-producer"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      clientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaEventPublisher{
		producer:    producer,
		topic:       topic,
		serviceName: serviceName,
	}, nil
}

// PublishTicketPurchased publishes a ticket purchased event
func (p *KafkaEventPublisher) PublishTicketPurchased(ctx context.Context, booking *domain.Booking) error {
	return p.publishEvent(ctx, domain.BookingEventPurchased, booking)
}

// PublishTicketCancelled publishes a booking cancelled event
func (p *KafkaEventPublisher) PublishTicketCancelled(ctx context.Context, booking *domain.Booking) error {
	return p.publishEvent(ctx, domain.BookingEventCancelled, booking)
}

// PublishSeatChanged publishes a seat reassignment event
func (p *KafkaEventPublisher) PublishSeatChanged(ctx context.Context, booking *domain.Booking) error {
	return p.publishEvent(ctx, domain.BookingEventSeatChanged, booking)
}

// Close closes the event publisher
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

// publishEvent publishes a booking event to Kafka
func (p *KafkaEventPublisher) publishEvent(ctx context.Context, eventType domain.BookingEventType, booking *domain.Booking) error {
	eventID := uuid.New().String()
	event := domain.NewBookingEvent(eventType, booking, eventID)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := map[string]string{
		"event_type":   string(eventType),
		"event_id":     eventID,
		"source":       p.serviceName,
		"content_type": "application/json",
	}

	msg := &kafka.Message{
		Topic:     p.topic,
		Key:       []byte(event.Key()),
		Value:     value,
		Headers:   headers,
		Timestamp: time.Now(),
	}

	if err := p.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	return nil
}

// NoOpEventPublisher is a no-op implementation of EventPublisher for testing
// and for running without brokers.
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new no-op event publisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

// PublishTicketPurchased is a no-op
func (p *NoOpEventPublisher) PublishTicketPurchased(ctx context.Context, booking *domain.Booking) error {
	return nil
}

// PublishTicketCancelled is a no-op
func (p *NoOpEventPublisher) PublishTicketCancelled(ctx context.Context, booking *domain.Booking) error {
	return nil
}

// PublishSeatChanged is a no-op
func (p *NoOpEventPublisher) PublishSeatChanged(ctx context.Context, booking *domain.Booking) error {
	return nil
}

// Close is a no-op
func (p *NoOpEventPublisher) Close() error {
	return nil
}
