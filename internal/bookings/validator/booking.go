package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "carental/pkg/errors"
	"carental/pkg/logger"
	"carental/pkg/model"
)

type BookingValidator interface {
	ValidateRequest(req *model.BookingRequest) error
	ValidateRange(pickup, ret time.Time) error
	ValidateID(id string) error
}

type bookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewBookingValidator(log *logger.Logger) BookingValidator {
	return &bookingValidator{
		validate: validator.New(),
		log:      log,
	}
}

func (v *bookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if req == nil {
		return apperrors.InvalidInput("booking payload is required")
	}

	if err := v.validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.Validation("validation failed", nil)
		}

		details := make(map[string]any)
		for _, fieldErr := range validationErrors {
			field := strings.ToLower(fieldErr.Field())
			switch fieldErr.Tag() {
			case "required":
				details[field] = fmt.Sprintf("%s is required", field)
			case "mongodb":
				details[field] = fmt.Sprintf("%s must be a valid MongoDB ObjectID", field)
			default:
				details[field] = fmt.Sprintf("%s is invalid", field)
			}
		}

		v.log.Debug("booking request validation failed", "details", details)
		return apperrors.Validation("validation failed", details)
	}
	return nil
}

// ValidateRange enforces the half-open range contract: return strictly
// after pickup.
func (v *bookingValidator) ValidateRange(pickup, ret time.Time) error {
	if !ret.After(pickup) {
		return apperrors.InvalidRange("return date must be after pickup date")
	}
	return nil
}

func (v *bookingValidator) ValidateID(id string) error {
	if err := v.validate.Var(id, "required,mongodb"); err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("invalid booking ID: %s", id))
	}
	return nil
}
