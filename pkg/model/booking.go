package model

import "time"

// Booking statuses. Only non-cancelled bookings block a car's dates.
// Cancellation is a soft state change; bookings are never deleted.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ActiveStatuses are the statuses that participate in overlap checks.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

// Booking reserves a car for the half-open date range
// [PickupDate, ReturnDate): pickup day inclusive, return day exclusive,
// so a return and a pickup on the same day never conflict.
// Price is frozen at creation time and not recomputed if the car's rate
// changes later.
type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	CarID      string    `json:"car_id" bson:"car_id" validate:"required,mongodb"`
	PickupDate time.Time `json:"pickup_date" bson:"pickup_date" validate:"required"`
	ReturnDate time.Time `json:"return_date" bson:"return_date" validate:"required,gtfield=PickupDate"`
	Price      int64     `json:"price" bson:"price" validate:"min=0"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`

	// Car is populated on reads for display and never persisted.
	Car *Car `json:"car,omitempty" bson:"-"`
}

// BookingRequest is the client payload for creating a booking. Dates are
// ISO 8601; the renter identity always comes from the resolved credential,
// never from the body.
type BookingRequest struct {
	CarID      string `json:"carId" validate:"required,mongodb"`
	PickupDate string `json:"pickupDate" validate:"required"`
	ReturnDate string `json:"returnDate" validate:"required"`
}
