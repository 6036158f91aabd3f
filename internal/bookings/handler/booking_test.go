package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"carental/internal/auth"
	apperrors "carental/pkg/errors"
	"carental/pkg/logger"
	"carental/pkg/model"
)

type mockBookingService struct {
	createFunc func(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error)
	cancelFunc func(ctx context.Context, callerID string, id string) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &model.Booking{ID: "64b000000000000000000b01", UserID: userID, Status: model.StatusConfirmed}, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, callerID string, id string) (*model.Booking, error) {
	return nil, apperrors.NotFoundWithID("booking", id)
}

func (m *mockBookingService) ListForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, callerID string, id string) (*model.Booking, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, callerID, id)
	}
	return &model.Booking{ID: id, UserID: callerID, Status: model.StatusCancelled}, nil
}

func newTestHandler(svc *mockBookingService) *BookingHandler {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &BookingHandler{service: svc, log: log}
}

func withIdentity(r *http.Request, userID string) *http.Request {
	return r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{
		UserID: userID,
		Role:   model.RoleRenter,
	}))
}

func TestCreate_RequiresIdentity(t *testing.T) {
	h := newTestHandler(&mockBookingService{})

	body := `{"carId":"64b000000000000000000c01","pickupDate":"2026-10-01","returnDate":"2026-10-04"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestCreate_Success(t *testing.T) {
	var gotUserID string
	var gotReq *model.BookingRequest
	h := newTestHandler(&mockBookingService{
		createFunc: func(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
			gotUserID = userID
			gotReq = req
			return &model.Booking{ID: "64b000000000000000000b01", UserID: userID, Status: model.StatusConfirmed}, nil
		},
	})

	body := `{"carId":"64b000000000000000000c01","pickupDate":"2026-10-01","returnDate":"2026-10-04"}`
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)), "507f1f77bcf86cd799439011")
	rec := httptest.NewRecorder()

	h.Create(rec, req, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != "507f1f77bcf86cd799439011" {
		t.Errorf("renter identity must come from the credential, got %q", gotUserID)
	}
	if gotReq == nil || gotReq.CarID != "64b000000000000000000c01" {
		t.Errorf("unexpected request forwarded: %+v", gotReq)
	}

	var booking model.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &booking); err != nil {
		t.Fatalf("response is not a booking: %v", err)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected confirmed booking in response, got %q", booking.Status)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	h := newTestHandler(&mockBookingService{})

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json")), "507f1f77bcf86cd799439011")
	rec := httptest.NewRecorder()

	h.Create(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreate_ConflictMapsTo409(t *testing.T) {
	h := newTestHandler(&mockBookingService{
		createFunc: func(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
			return nil, apperrors.Conflict("car is already booked for the requested dates")
		},
	})

	body := `{"carId":"64b000000000000000000c01","pickupDate":"2026-10-01","returnDate":"2026-10-04"}`
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)), "507f1f77bcf86cd799439011")
	rec := httptest.NewRecorder()

	h.Create(rec, req, nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if resp.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT code in body, got %q", resp.Code)
	}
}

func TestList_InvalidLimit(t *testing.T) {
	h := newTestHandler(&mockBookingService{})

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=abc", nil), "507f1f77bcf86cd799439011")
	rec := httptest.NewRecorder()

	h.List(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCancel_Success(t *testing.T) {
	h := newTestHandler(&mockBookingService{})

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/bookings/id/64b000000000000000000b01/cancel", nil), "507f1f77bcf86cd799439011")
	rec := httptest.NewRecorder()

	h.Cancel(rec, req, httprouter.Params{{Key: "id", Value: "64b000000000000000000b01"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body["ok"] {
		t.Errorf("expected ok=true, got %s", rec.Body.String())
	}
}
