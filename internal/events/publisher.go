package events

import (
	"context"
	"time"

	"carental/pkg/kafka"
	kafka_config "carental/pkg/kafka/config"
	"carental/pkg/logger"
	"carental/pkg/model"
)

// Publisher emits booking lifecycle events. Publishing is best-effort:
// implementations log failures but never fail the booking operation.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

// NewPublisher returns a Kafka-backed publisher, or a noop one when no
// brokers are configured.
func NewPublisher(cfg *kafka_config.Config, source string, log *logger.Logger) (Publisher, error) {
	if cfg == nil || !cfg.Enabled() {
		log.Info("Kafka brokers not configured, booking events disabled")
		return NoopPublisher{}, nil
	}

	producer, err := kafka.NewProducer(cfg, TopicBookings, TopicBookingsDLQ)
	if err != nil {
		return nil, err
	}

	log.Info("Booking event publisher initialized", "topic", TopicBookings)
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}, nil
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, booking)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCancelled, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := BookingEvent{
		BookingID:  booking.ID,
		CarID:      booking.CarID,
		UserID:     booking.UserID,
		PickupDate: booking.PickupDate,
		ReturnDate: booking.ReturnDate,
		Price:      booking.Price,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(booking.CarID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(p.source).
		Build()

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

// NoopPublisher drops every event. Used when eventing is disabled and in
// tests.
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(context.Context, *model.Booking)   {}
func (NoopPublisher) BookingCancelled(context.Context, *model.Booking) {}
func (NoopPublisher) Close() error                                     { return nil }
