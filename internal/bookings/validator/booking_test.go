package validator

import (
	"testing"
	"time"

	apperrors "carental/pkg/errors"
	"carental/pkg/logger"
	"carental/pkg/model"
)

func newTestValidator() BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator()

	valid := &model.BookingRequest{
		CarID:      "64b000000000000000000c01",
		PickupDate: "2026-10-01",
		ReturnDate: "2026-10-04",
	}
	if err := v.ValidateRequest(valid); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		req  *model.BookingRequest
	}{
		{"nil request", nil},
		{"missing car", &model.BookingRequest{PickupDate: "2026-10-01", ReturnDate: "2026-10-04"}},
		{"malformed car id", &model.BookingRequest{CarID: "not-an-id", PickupDate: "2026-10-01", ReturnDate: "2026-10-04"}},
		{"missing dates", &model.BookingRequest{CarID: "64b000000000000000000c01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := v.ValidateRequest(tc.req); err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	v := newTestValidator()
	future := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)

	if err := v.ValidateRange(future, future.AddDate(0, 0, 3)); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}

	// only the ordering of the two dates matters, not their distance
	// from now
	pickup := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	if err := v.ValidateRange(pickup, ret); err != nil {
		t.Errorf("historical range rejected: %v", err)
	}

	cases := []struct {
		name   string
		pickup time.Time
		ret    time.Time
	}{
		{"inverted", future.AddDate(0, 0, 3), future},
		{"zero length", future, future},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateRange(tc.pickup, tc.ret)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeInvalidRange {
				t.Errorf("expected INVALID_RANGE, got %s", apperrors.AsAppError(err).Code)
			}
		})
	}
}
