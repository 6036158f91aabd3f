package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "carental/internal/bookings/errors"
	"carental/internal/bookings/pricing"
	"carental/internal/bookings/repository"
	"carental/internal/bookings/validator"
	carserrors "carental/internal/cars/errors"
	"carental/internal/events"
	"carental/pkg/config"
	apperrors "carental/pkg/errors"
	"carental/pkg/model"
)

// Accepted request date layouts. Date-only values are taken as midnight
// UTC.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// CarLookup resolves the car being booked. Satisfied by the cars
// repository.
type CarLookup interface {
	FindByID(ctx context.Context, id string) (*model.Car, error)
}

type BookingService interface {
	Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, callerID string, id string) (*model.Booking, error)
	ListForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	Cancel(ctx context.Context, callerID string, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	cars      CarLookup
	validator validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	cars CarLookup,
	v validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		cars:      cars,
		validator: v,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create reserves a car for the half-open range [pickup, return). The
// overlap check and the insert run inside a transaction while an
// advisory per-car lock is held, so two concurrent requests for the same
// car cannot both pass the check.
func (s *bookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid pickup date: %s", req.PickupDate))
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid return date: %s", req.ReturnDate))
	}

	if err := s.validator.ValidateRange(pickup, ret); err != nil {
		return nil, err
	}

	car, err := s.cars.FindByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) || errors.Is(err, carserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("car", req.CarID)
		}
		return nil, apperrors.Internal("failed to look up car", err)
	}
	if !car.IsAvailable {
		return nil, apperrors.Conflict("car is not open for booking")
	}

	booking := &model.Booking{
		UserID:     userID,
		CarID:      car.ID,
		PickupDate: pickup,
		ReturnDate: ret,
		Price:      pricing.Total(car.PricePerDay, pickup, ret),
		Status:     model.StatusConfirmed,
	}

	if err := s.lockRepo.Acquire(ctx, car.ID); err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return nil, apperrors.Conflict("another booking for this car is in progress, retry shortly")
		}
		return nil, apperrors.Internal("failed to acquire booking lock", err)
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, car.ID); releaseErr != nil {
			s.cfg.Log.Warn("failed to release booking lock", "car_id", car.ID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		overlapping, err := s.repo.FindOverlapping(sessCtx, car.ID, pickup, ret)
		if err != nil {
			return apperrors.Internal("failed to check booking overlap", err)
		}
		if len(overlapping) > 0 {
			return apperrors.Conflict("car is already booked for the requested dates")
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Car = car
	s.publisher.BookingCreated(ctx, booking)

	s.cfg.Log.Info("booking created",
		"booking_id", booking.ID,
		"car_id", car.ID,
		"user_id", userID,
		"pickup_date", pickup,
		"return_date", ret,
		"price", booking.Price,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, callerID string, id string) (*model.Booking, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id)
	}

	if booking.UserID != callerID {
		return nil, apperrors.Forbidden("bookings are visible to the renter only")
	}

	s.populateCar(ctx, booking)
	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list bookings", err)
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to count bookings", err)
	}

	for _, booking := range bookings {
		s.populateCar(ctx, booking)
	}

	return bookings, total, nil
}

// Cancel soft-deletes a booking, freeing its dates for new reservations.
// Cancelling an already cancelled booking succeeds without a second
// state change or event.
func (s *bookingService) Cancel(ctx context.Context, callerID string, id string) (*model.Booking, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id)
	}

	if booking.UserID != callerID {
		return nil, apperrors.Forbidden("only the renter can cancel a booking")
	}

	if booking.Status == model.StatusCancelled {
		return booking, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		return nil, s.mapRepositoryError(err, id)
	}

	booking.Status = model.StatusCancelled
	s.publisher.BookingCancelled(ctx, booking)

	s.cfg.Log.Info("booking cancelled", "booking_id", id, "car_id", booking.CarID, "user_id", callerID)
	return booking, nil
}

// populateCar is best effort; a listing deleted after booking still
// leaves the booking readable.
func (s *bookingService) populateCar(ctx context.Context, booking *model.Booking) {
	car, err := s.cars.FindByID(ctx, booking.CarID)
	if err != nil {
		s.cfg.Log.Warn("failed to resolve booked car", "booking_id", booking.ID, "car_id", booking.CarID, "error", err)
		return
	}
	booking.Car = car
}

func (s *bookingService) mapRepositoryError(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput(fmt.Sprintf("invalid booking ID: %s", id))
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("booking store timed out")
	default:
		return apperrors.Internal("booking store failure", err)
	}
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", value)
}
