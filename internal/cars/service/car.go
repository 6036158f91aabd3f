package service

import (
	"context"
	"errors"
	"fmt"

	carserrors "carental/internal/cars/errors"
	"carental/internal/cars/repository"
	"carental/internal/cars/validator"
	"carental/pkg/config"
	apperrors "carental/pkg/errors"
	"carental/pkg/model"
	"carental/pkg/sanitizer"
)

// OwnerLookup resolves owner accounts for display on catalogue reads.
type OwnerLookup interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type CarService interface {
	Create(ctx context.Context, ownerID string, car *model.Car) error
	GetByID(ctx context.Context, id string) (*model.Car, error)
	List(ctx context.Context, filter repository.CarFilter, limit int, offset int64) ([]*model.Car, int64, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*model.Car, error)
	Update(ctx context.Context, callerID string, carID string, updates *model.CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, callerID string, carID string) error
}

type carService struct {
	cfg       *config.Config
	repo      repository.CarRepository
	owners    OwnerLookup
	validator validator.CarValidator
}

func NewCarService(cfg *config.Config, repo repository.CarRepository, owners OwnerLookup, v validator.CarValidator) CarService {
	return &carService{
		cfg:       cfg,
		repo:      repo,
		owners:    owners,
		validator: v,
	}
}

func (s *carService) Create(ctx context.Context, ownerID string, car *model.Car) error {
	if car == nil {
		return apperrors.InvalidInput("car payload is required")
	}

	car.OwnerID = ownerID
	car.Brand = sanitizer.NormalizeText(car.Brand)
	car.Model = sanitizer.NormalizeText(car.Model)
	car.Category = sanitizer.NormalizeText(car.Category)
	car.Location = sanitizer.NormalizeLocation(car.Location)
	car.Description = sanitizer.NormalizeText(car.Description)
	car.IsAvailable = true

	if err := s.validator.ValidateCar(car); err != nil {
		return err
	}

	if s.cfg.MinCarYear > 0 && (car.Year < s.cfg.MinCarYear || car.Year > s.cfg.MaxCarYear) {
		return apperrors.Validation("validation failed", map[string]any{
			"year": fmt.Sprintf("year must be between %d and %d", s.cfg.MinCarYear, s.cfg.MaxCarYear),
		})
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return apperrors.Internal("failed to create car", err)
	}

	s.cfg.Log.Info("car listed", "car_id", car.ID, "owner_id", ownerID, "brand", car.Brand, "model", car.Model)
	return nil
}

func (s *carService) GetByID(ctx context.Context, id string) (*model.Car, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id)
	}

	s.populateOwner(ctx, car)
	return car, nil
}

func (s *carService) List(ctx context.Context, filter repository.CarFilter, limit int, offset int64) ([]*model.Car, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	filter.Location = sanitizer.NormalizeLocation(filter.Location)
	filter.Category = sanitizer.NormalizeText(filter.Category)

	cars, err := s.repo.FindAvailable(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list cars", err)
	}

	total, err := s.repo.CountAvailable(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to count cars", err)
	}

	for _, car := range cars {
		s.populateOwner(ctx, car)
	}

	return cars, total, nil
}

func (s *carService) ListForOwner(ctx context.Context, ownerID string) ([]*model.Car, error) {
	cars, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal("failed to list owner cars", err)
	}
	return cars, nil
}

func (s *carService) Update(ctx context.Context, callerID string, carID string, updates *model.CarUpdate) (*model.Car, error) {
	if err := s.validator.ValidateID(carID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, err
	}

	car, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		return nil, s.mapRepositoryError(err, carID)
	}

	if car.OwnerID != callerID {
		return nil, apperrors.Forbidden("only the listing owner can modify a car")
	}

	if err := s.repo.Update(ctx, carID, updates); err != nil {
		return nil, s.mapRepositoryError(err, carID)
	}

	if updates.PricePerDay != nil {
		car.PricePerDay = *updates.PricePerDay
	}
	if updates.IsAvailable != nil {
		car.IsAvailable = *updates.IsAvailable
	}

	return car, nil
}

func (s *carService) Delete(ctx context.Context, callerID string, carID string) error {
	if err := s.validator.ValidateID(carID); err != nil {
		return err
	}

	car, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		return s.mapRepositoryError(err, carID)
	}

	if car.OwnerID != callerID {
		return apperrors.Forbidden("only the listing owner can delete a car")
	}

	if err := s.repo.Delete(ctx, carID); err != nil {
		return s.mapRepositoryError(err, carID)
	}

	s.cfg.Log.Info("car delisted", "car_id", carID, "owner_id", callerID)
	return nil
}

// populateOwner is best effort. A listing with a missing owner record still
// renders; the owner field stays empty.
func (s *carService) populateOwner(ctx context.Context, car *model.Car) {
	owner, err := s.owners.FindByID(ctx, car.OwnerID)
	if err != nil {
		s.cfg.Log.Warn("failed to resolve car owner", "car_id", car.ID, "owner_id", car.OwnerID, "error", err)
		return
	}
	car.Owner = owner
}

func (s *carService) mapRepositoryError(err error, id string) error {
	switch {
	case errors.Is(err, carserrors.ErrNotFound):
		return apperrors.NotFoundWithID("car", id)
	case errors.Is(err, carserrors.ErrInvalidID):
		return apperrors.InvalidInput(fmt.Sprintf("invalid car ID: %s", id))
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("car store timed out")
	default:
		return apperrors.Internal("car store failure", err)
	}
}
