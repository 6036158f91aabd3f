package model

import "time"

// Car is a rentable vehicle listed by an owner. PricePerDay is stored in
// currency minor units (cents) so pricing arithmetic stays integral.
// IsAvailable is an advisory display flag; booking conflicts are decided
// by the overlap check, never by this field.
type Car struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID         string    `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	Brand           string    `json:"brand" bson:"brand" validate:"required,min=1,max=60"`
	Model           string    `json:"model" bson:"model" validate:"required,min=1,max=60"`
	Year            int       `json:"year" bson:"year" validate:"required,min=1950,max=2035"`
	Category        string    `json:"category" bson:"category" validate:"required,min=2,max=40"`
	SeatingCapacity int       `json:"seating_capacity" bson:"seating_capacity" validate:"required,min=1,max=20"`
	FuelType        string    `json:"fuel_type" bson:"fuel_type" validate:"required,oneof=Petrol Diesel Electric Hybrid"`
	Transmission    string    `json:"transmission" bson:"transmission" validate:"required,oneof=Manual Automatic"`
	PricePerDay     int64     `json:"price_per_day" bson:"price_per_day" validate:"required,min=1"`
	Location        string    `json:"location" bson:"location" validate:"required,min=2,max=100"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Image           string    `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,max=500"`
	IsAvailable     bool      `json:"is_available" bson:"is_available"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`

	// Owner is populated on reads for display and never persisted.
	Owner *User `json:"owner,omitempty" bson:"-"`
}

// CarUpdate carries the owner-mutable fields. Nil means "leave unchanged".
type CarUpdate struct {
	PricePerDay *int64 `json:"price_per_day,omitempty" validate:"omitempty,min=1"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}
