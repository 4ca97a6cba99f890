// Package events publishes booking lifecycle events to Kafka. Publishing is
// best effort: a broker outage must never fail the booking operation itself.
package events

import (
	"context"

	"campusbook/pkg/config"
	"campusbook/pkg/kafka"
	kafka_config "campusbook/pkg/kafka/config"
	kafka_middleware "campusbook/pkg/kafka/middleware"
	"campusbook/pkg/logger"
	"campusbook/pkg/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"

	schemaVersion = "1"
	source        = "campusbook-server"
)

// BookingEvent is the payload carried by every booking lifecycle message.
type BookingEvent struct {
	EventType string         `json:"event_type"`
	Booking   *model.Booking `json:"booking"`
}

type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingUpdated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

// NewPublisher builds a Kafka-backed publisher, or a no-op one when events
// are disabled in the configuration.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled, using no-op publisher")
		return noopPublisher{}, nil
	}

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, "")
	if err != nil {
		return nil, err
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	return &kafkaPublisher{
		producer: producer,
		topic:    cfg.EventsTopic,
		log:      cfg.Log,
	}, nil
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingCreated, booking)
}

func (p *kafkaPublisher) BookingUpdated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingUpdated, booking)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingCancelled, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	// Keyed by facility so consumers see one facility's bookings in order.
	msg := kafka.NewMessage().
		WithKey(booking.FacilityID).
		WithValue(BookingEvent{EventType: eventType, Booking: booking}).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		Build()
	msg.Topic = p.topic

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

func (noopPublisher) BookingCreated(context.Context, *model.Booking)   {}
func (noopPublisher) BookingUpdated(context.Context, *model.Booking)   {}
func (noopPublisher) BookingCancelled(context.Context, *model.Booking) {}
func (noopPublisher) Close() error                                     { return nil }
