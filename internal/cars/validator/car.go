package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "carental/pkg/errors"
	"carental/pkg/logger"
	"carental/pkg/model"
)

type CarValidator interface {
	ValidateCar(car *model.Car) error
	ValidateUpdate(updates *model.CarUpdate) error
	ValidateID(id string) error
}

type carValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewCarValidator(log *logger.Logger) CarValidator {
	return &carValidator{
		validate: validator.New(),
		log:      log,
	}
}

func (v *carValidator) ValidateCar(car *model.Car) error {
	if car == nil {
		return apperrors.InvalidInput("car payload is required")
	}

	if err := v.validate.Struct(car); err != nil {
		return v.toValidationError(err)
	}
	return nil
}

func (v *carValidator) ValidateUpdate(updates *model.CarUpdate) error {
	if updates == nil {
		return apperrors.InvalidInput("update payload is required")
	}

	if updates.PricePerDay == nil && updates.IsAvailable == nil {
		return apperrors.InvalidInput("at least one field must be provided")
	}

	if err := v.validate.Struct(updates); err != nil {
		return v.toValidationError(err)
	}
	return nil
}

func (v *carValidator) ValidateID(id string) error {
	if err := v.validate.Var(id, "required,mongodb"); err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("invalid car ID: %s", id))
	}
	return nil
}

func (v *carValidator) toValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation("validation failed", nil)
	}

	details := make(map[string]any)
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		var message string
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		details[field] = message
	}

	v.log.Debug("car validation failed", "details", details)
	return apperrors.Validation("validation failed", details)
}
