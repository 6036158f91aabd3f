package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"carental/internal/auth"
	userserrors "carental/internal/users/errors"
	"carental/internal/users/repository"
	"carental/internal/users/validator"
	"carental/pkg/config"
	apperrors "carental/pkg/errors"
	"carental/pkg/model"
	"carental/pkg/sanitizer"
)

// AuthResult is returned on register and login: the persisted account plus
// a freshly issued bearer token.
type AuthResult struct {
	User  *model.User
	Token string
}

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	PromoteToOwner(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	cfg       *config.Config
	repo      repository.UserRepository
	validator validator.UserValidator
	tokens    *auth.TokenManager
}

func NewUserService(cfg *config.Config, repo repository.UserRepository, v validator.UserValidator, tokens *auth.TokenManager) UserService {
	return &userService{
		cfg:       cfg,
		repo:      repo,
		validator: v,
		tokens:    tokens,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error) {
	if err := s.validator.ValidateRegisterRequest(req); err != nil {
		return nil, err
	}

	if len(req.Password) < s.cfg.MinPasswordSize {
		return nil, apperrors.Validation("validation failed", map[string]any{
			"password": fmt.Sprintf("password must be at least %d characters", s.cfg.MinPasswordSize),
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &model.User{
		Name:         sanitizer.NormalizeText(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleRenter,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, apperrors.Internal("failed to create user", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error) {
	if err := s.validator.ValidateLoginRequest(req); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, apperrors.Internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id)
	}
	return user, nil
}

func (s *userService) PromoteToOwner(ctx context.Context, id string) (*model.User, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepositoryError(err, id)
	}

	if user.Role == model.RoleOwner {
		return user, nil
	}

	if err := s.repo.UpdateRole(ctx, id, model.RoleOwner); err != nil {
		return nil, s.mapRepositoryError(err, id)
	}

	user.Role = model.RoleOwner
	return user, nil
}

func (s *userService) mapRepositoryError(err error, id string) error {
	switch {
	case errors.Is(err, userserrors.ErrNotFound):
		return apperrors.NotFoundWithID("user", id)
	case errors.Is(err, userserrors.ErrInvalidID):
		return apperrors.InvalidInput(fmt.Sprintf("invalid user ID: %s", id))
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("user store timed out")
	default:
		return apperrors.Internal("user store failure", err)
	}
}
