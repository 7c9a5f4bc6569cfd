package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catgw/internal/auth"
	"catgw/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func newTestService(repo *MockUserRepository, store *MockTokenStore) UserService {
	return NewUserService(repo, auth.NewJWTService("test-secret", time.Hour), store)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name      string
		setupRepo func(repo *MockUserRepository)
		wantErr   error
	}{
		{
			name: "success",
			setupRepo: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "email already registered",
			setupRepo: func(repo *MockUserRepository) {
				existing := &model.User{ID: 1, Email: "a@b.com"}
				repo.On("FindByEmail", mock.Anything, "a@b.com").Return(existing, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "losing a registration race is still a conflict",
			setupRepo: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: ErrEmailTaken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupRepo(repo)
			svc := newTestService(repo, new(MockTokenStore))

			user, err := svc.Register(context.Background(), "a@b.com", "secret123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "a@b.com", user.Email)
				assert.Equal(t, model.RoleRegular, user.Role)
				assert.NotEqual(t, "secret123", user.PasswordHash)

				ok, err := auth.CheckPassword("secret123", user.PasswordHash)
				require.NoError(t, err)
				assert.True(t, ok)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	hash := mustHash(t, "secret123")

	tests := []struct {
		name      string
		password  string
		setupRepo func(repo *MockUserRepository)
		wantErr   error
	}{
		{
			name:     "success",
			password: "secret123",
			setupRepo: func(repo *MockUserRepository) {
				user := &model.User{ID: 3, Email: "a@b.com", PasswordHash: hash, Role: model.RoleRegular}
				repo.On("FindByEmail", mock.Anything, "a@b.com").Return(user, nil)
			},
		},
		{
			name:     "wrong password",
			password: "wrong",
			setupRepo: func(repo *MockUserRepository) {
				user := &model.User{ID: 3, Email: "a@b.com", PasswordHash: hash, Role: model.RoleRegular}
				repo.On("FindByEmail", mock.Anything, "a@b.com").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "account absent",
			password: "secret123",
			setupRepo: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupRepo(repo)
			store := new(MockTokenStore)
			if tt.wantErr == nil {
				store.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(3), "a@b.com", auth.RefreshTokenExpiry).Return(nil)
			}
			svc := newTestService(repo, store)

			accessToken, refreshToken, user, err := svc.Login(context.Background(), "a@b.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, "a@b.com", user.Email)
			}
			repo.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestUserService_LoginFailuresAreIndistinguishable(t *testing.T) {
	hash := mustHash(t, "secret123")

	absentRepo := new(MockUserRepository)
	absentRepo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
	_, _, _, errAbsent := newTestService(absentRepo, new(MockTokenStore)).
		Login(context.Background(), "a@b.com", "secret123")

	wrongRepo := new(MockUserRepository)
	wrongRepo.On("FindByEmail", mock.Anything, "a@b.com").
		Return(&model.User{ID: 3, Email: "a@b.com", PasswordHash: hash}, nil)
	_, _, _, errWrong := newTestService(wrongRepo, new(MockTokenStore)).
		Login(context.Background(), "a@b.com", "wrong")

	require.Error(t, errAbsent)
	require.Error(t, errWrong)
	assert.Equal(t, errAbsent.Error(), errWrong.Error())
}

func TestUserService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	user := &model.User{ID: 3, Email: "a@b.com", Role: model.RoleRegular}

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	require.NoError(t, err)

	t.Run("valid stored token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(3)).Return(user, nil)
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(3), "a@b.com", nil)

		svc := NewUserService(repo, jwtService, store)
		accessToken, err := svc.Refresh(context.Background(), refreshToken)
		require.NoError(t, err)

		claims, err := jwtService.ParseToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(3), claims.UserID)
	})

	t.Run("revoked token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", auth.ErrRefreshTokenNotFound)

		svc := NewUserService(new(MockUserRepository), jwtService, store)
		_, err := svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		accessToken, err := jwtService.GenerateAccessToken(user)
		require.NoError(t, err)

		svc := NewUserService(new(MockUserRepository), jwtService, new(MockTokenStore))
		_, err = svc.Refresh(context.Background(), accessToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestUserService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	user := &model.User{ID: 3, Email: "a@b.com"}

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user)
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewUserService(new(MockUserRepository), jwtService, store)
	require.NoError(t, svc.Logout(context.Background(), refreshToken))
	store.AssertExpectations(t)
}
