package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"carental/internal/events"
	"carental/pkg/kafka"
	kafka_config "carental/pkg/kafka/config"
	"carental/pkg/logger"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "booking-notifier"
)

// The notifier tails the booking lifecycle topic and delivers renter
// notifications. Delivery here is the log sink; swapping in a mail or
// push sender only changes the handler body.
func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: ServiceName,
	})

	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		log.Fatal("Kafka brokers must be configured for the notifier")
	}

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		events.TopicBookings,
		consumerGroup,
		events.TopicBookingsDLQ,
		newNotificationHandler(log),
	)
	if err != nil {
		log.Fatal("Failed to create consumer", "error", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Error("Failed to close consumer", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	log.Info("Notifier started", "topic", events.TopicBookings, "group", consumerGroup)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Consumer stopped with error", "error", err)
	}
	log.Info("Notifier stopped")
}

func newNotificationHandler(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event events.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}

		switch msg.GetEventType() {
		case events.TypeBookingCreated:
			log.Info("Booking confirmation notification",
				"booking_id", event.BookingID,
				"user_id", event.UserID,
				"car_id", event.CarID,
				"pickup_date", event.PickupDate,
				"return_date", event.ReturnDate,
				"price", event.Price,
			)
		case events.TypeBookingCancelled:
			log.Info("Booking cancellation notification",
				"booking_id", event.BookingID,
				"user_id", event.UserID,
				"car_id", event.CarID,
			)
		default:
			log.Warn("Unknown booking event type",
				"event_type", msg.GetEventType(),
				"event_id", msg.GetEventID(),
			)
		}
		return nil
	}
}
