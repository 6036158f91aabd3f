package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "carental/internal/bookings/errors"
	"carental/pkg/config"
	"carental/pkg/model"
)

const (
	LockCollectionName = "Booking_locks"

	lockIDPrefix = "booking_lock_"
)

// BookingLockRepository manages advisory per-car lock documents. A unique
// _id per car serializes concurrent creation attempts; a TTL index on
// expires_at reaps locks left behind by crashed holders.
type BookingLockRepository interface {
	Acquire(ctx context.Context, carID string) error
	Release(ctx context.Context, carID string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func LockID(carID string) string {
	return lockIDPrefix + carID
}

func (r *mongoBookingLockRepository) Acquire(ctx context.Context, carID string) error {
	now := time.Now().UTC()
	lock := &model.BookingLock{
		ID:        LockID(carID),
		ExpiresAt: now.Add(r.cfg.BookingLockTTL),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	return nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, carID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": LockID(carID)})
	if err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
