package events

import "time"

const (
	TopicBookings    = "booking-events"
	TopicBookingsDLQ = "booking-events-dlq"

	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload published on the booking lifecycle topic.
// Notification workers use it to reach the renter without reading the
// primary store.
type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	CarID      string    `json:"car_id"`
	UserID     string    `json:"user_id"`
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
	Price      int64     `json:"price"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
