package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carental/internal/auth"
	userserrors "carental/internal/users/errors"
	"carental/internal/users/validator"
	"carental/pkg/config"
	apperrors "carental/pkg/errors"
	"carental/pkg/logger"
	"carental/pkg/model"
)

type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	updateRoleFunc  func(ctx context.Context, id string, role string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "507f1f77bcf86cd799439011"
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id string, role string) error {
	if m.updateRoleFunc != nil {
		return m.updateRoleFunc(ctx, id, role)
	}
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:        log,
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestService(repo *mockUserRepository) (UserService, *auth.TokenManager) {
	cfg := testConfig()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(cfg, repo, validator.NewUserValidator(), tokens), tokens
}

func TestRegister_Success(t *testing.T) {
	var saved *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "507f1f77bcf86cd799439011"
			saved = user
			return nil
		},
	}
	svc, tokens := newTestService(repo)

	result, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "  Alice   Doe ",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if saved == nil {
		t.Fatal("expected user to be persisted")
	}
	if saved.Name != "Alice Doe" {
		t.Errorf("expected normalized name 'Alice Doe', got %q", saved.Name)
	}
	if saved.Role != model.RoleRenter {
		t.Errorf("expected new accounts to start as renter, got %q", saved.Role)
	}
	if saved.PasswordHash == "correct horse battery" {
		t.Error("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("correct horse battery")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	userID, err := tokens.Parse(result.Token)
	if err != nil {
		t.Fatalf("issued token failed to parse: %v", err)
	}
	if userID != "507f1f77bcf86cd799439011" {
		t.Errorf("token carries wrong user ID: %s", userID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT, got %s", appErr.Code)
	}
}

func TestRegister_InvalidPayload(t *testing.T) {
	svc, _ := newTestService(&mockUserRepository{})

	cases := []struct {
		name string
		req  *model.RegisterRequest
	}{
		{"short password", &model.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "short"}},
		{"bad email", &model.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "correct horse battery"}},
		{"missing name", &model.RegisterRequest{Email: "alice@example.com", Password: "correct horse battery"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected VALIDATION_ERROR, got %s", appErr.Code)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           "507f1f77bcf86cd799439011",
				Name:         "Alice",
				Email:        email,
				PasswordHash: string(hash),
				Role:         model.RoleRenter,
			}, nil
		},
	}
	svc, tokens := newTestService(repo)

	result, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := tokens.Parse(result.Token); err != nil {
		t.Errorf("issued token failed to parse: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "507f1f77bcf86cd799439011", PasswordHash: string(hash)}, nil
		},
	}
	svc, _ := newTestService(repo)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	if err == nil {
		t.Fatal("expected error for wrong password")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", appErr.Code)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})
	if err == nil {
		t.Fatal("expected error for unknown email")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", appErr.Code)
	}
}

func TestPromoteToOwner(t *testing.T) {
	roleUpdated := ""
	repo := &mockUserRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleRenter}, nil
		},
		updateRoleFunc: func(ctx context.Context, id string, role string) error {
			roleUpdated = role
			return nil
		},
	}
	svc, _ := newTestService(repo)

	user, err := svc.PromoteToOwner(context.Background(), "507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("PromoteToOwner failed: %v", err)
	}
	if user.Role != model.RoleOwner {
		t.Errorf("expected role owner, got %q", user.Role)
	}
	if roleUpdated != model.RoleOwner {
		t.Errorf("expected role update persisted, got %q", roleUpdated)
	}
}

func TestPromoteToOwner_AlreadyOwner(t *testing.T) {
	updateCalled := false
	repo := &mockUserRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleOwner}, nil
		},
		updateRoleFunc: func(ctx context.Context, id string, role string) error {
			updateCalled = true
			return nil
		},
	}
	svc, _ := newTestService(repo)

	user, err := svc.PromoteToOwner(context.Background(), "507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("PromoteToOwner failed: %v", err)
	}
	if user.Role != model.RoleOwner {
		t.Errorf("expected role owner, got %q", user.Role)
	}
	if updateCalled {
		t.Error("expected no store write for an account that is already an owner")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(&mockUserRepository{})

	_, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439011")
	if err == nil {
		t.Fatal("expected error for missing user")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}
}
