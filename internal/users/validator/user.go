package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "carental/pkg/errors"
	"carental/pkg/model"
)

type UserValidator interface {
	ValidateRegisterRequest(req *model.RegisterRequest) error
	ValidateLoginRequest(req *model.LoginRequest) error
	ValidateID(id string) error
}

type userValidator struct {
	validate *validator.Validate
}

func NewUserValidator() UserValidator {
	return &userValidator{
		validate: validator.New(),
	}
}

func (v *userValidator) ValidateRegisterRequest(req *model.RegisterRequest) error {
	if req == nil {
		return apperrors.InvalidInput("registration payload is required")
	}

	if err := v.validate.Struct(req); err != nil {
		return v.toValidationError(err)
	}
	return nil
}

func (v *userValidator) ValidateLoginRequest(req *model.LoginRequest) error {
	if req == nil {
		return apperrors.InvalidInput("login payload is required")
	}

	if err := v.validate.Struct(req); err != nil {
		return v.toValidationError(err)
	}
	return nil
}

func (v *userValidator) ValidateID(id string) error {
	if err := v.validate.Var(id, "required,mongodb"); err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("invalid user ID: %s", id))
	}
	return nil
}

func (v *userValidator) toValidationError(err error) error {
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
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		details[field] = message
	}

	return apperrors.Validation("validation failed", details)
}
