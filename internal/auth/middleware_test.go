package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	userserrors "carental/internal/users/errors"
	apperrors "carental/pkg/errors"
	"carental/pkg/logger"
	"carental/pkg/model"
)

type mockUserLookup struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserLookup) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFunc(ctx, id)
}

func newTestGuard(users *mockUserLookup) (*Guard, *TokenManager) {
	tm := NewTokenManager("test-secret", time.Hour)
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewGuard(tm, users, log), tm
}

func protectedRequest(t *testing.T, tm *TokenManager, userID string) *http.Request {
	t.Helper()
	token, err := tm.Generate(userID)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Code
}

func TestProtect_AttachesIdentity(t *testing.T) {
	users := &mockUserLookup{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleOwner}, nil
		},
	}
	guard, tm := newTestGuard(users)

	var got Identity
	handler := guard.Protect(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		got, _ = IdentityFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	handler(rec, protectedRequest(t, tm, "507f1f77bcf86cd799439011"), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.UserID != "507f1f77bcf86cd799439011" || got.Role != model.RoleOwner {
		t.Errorf("unexpected identity: %+v", got)
	}
}

func TestProtect_UnknownUser(t *testing.T) {
	users := &mockUserLookup{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}
	guard, tm := newTestGuard(users)

	handler := guard.Protect(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		t.Error("handler must not run")
	})

	rec := httptest.NewRecorder()
	handler(rec, protectedRequest(t, tm, "507f1f77bcf86cd799439011"), nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != apperrors.CodeUnauthorized {
		t.Errorf("expected %s, got %s", apperrors.CodeUnauthorized, code)
	}
}

func TestProtect_StoreTimeoutIsNotUnauthorized(t *testing.T) {
	users := &mockUserLookup{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, context.DeadlineExceeded
		},
	}
	guard, tm := newTestGuard(users)

	handler := guard.Protect(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		t.Error("handler must not run")
	})

	rec := httptest.NewRecorder()
	handler(rec, protectedRequest(t, tm, "507f1f77bcf86cd799439011"), nil)

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected 504, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != apperrors.CodeTimeout {
		t.Errorf("expected %s, got %s", apperrors.CodeTimeout, code)
	}
}
