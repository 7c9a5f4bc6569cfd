package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catgw/internal/auth"
	apperrors "catgw/internal/errors"
	"catgw/internal/model"
	"catgw/internal/repository"
)

// Use-case errors. They are taxonomy members, so the error handler renders
// them with the right status without any per-handler mapping. Login fails
// with the same message for a missing account and a wrong password, so a
// caller cannot enumerate registered emails.
var (
	ErrEmailTaken          = apperrors.NewConflict("El email ya está registrado")
	ErrInvalidCredentials  = apperrors.NewUnauthorized("Credenciales inválidas")
	ErrInvalidRefreshToken = apperrors.NewUnauthorized("Token de refresco inválido")
)

// UserService handles registration, login and the refresh-token lifecycle.
type UserService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	List(ctx context.Context) ([]model.User, error)
}

type userService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) UserService {
	return &userService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new regular user with a hashed password. A duplicate
// email is a conflict, including when two registrations race: the unique
// index on email makes the losing insert fail with gorm.ErrDuplicatedKey.
func (s *userService) Register(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleRegular,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *userService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return "", "", nil, err
	}
	if !ok {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

// Refresh validates a refresh token against the store and mints a new access
// token from the account's current state, so a role change takes effect on
// the next refresh even though outstanding access tokens keep the old role.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ParseToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token.
func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ParseToken(refreshToken)
	if err != nil || claims.ID == "" {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
}

// List returns all users. Restricted to admins at the routing layer.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
