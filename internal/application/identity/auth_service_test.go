package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paintshop/backend/internal/domain/identity"
	"github.com/paintshop/backend/internal/domain/shared"
	"github.com/paintshop/backend/internal/infrastructure/auth"
	"github.com/paintshop/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newAuthFixture(t *testing.T) (*MockUserRepository, *AuthService) {
	t.Helper()
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "paintshop-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	return userRepo, NewAuthService(userRepo, jwtService, blacklist, nil)
}

func newActiveUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("shopkeeper", "correct-horse", "The Shopkeeper")
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)

		userRepo.On("FindByUsername", ctx, "shopkeeper").Return(user, nil).Once()

		result, err := service.Login(ctx, LoginInput{Username: "shopkeeper", Password: "correct-horse"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "shopkeeper", result.User.Username)
	})

	t.Run("wrong password yields the same error as unknown user", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)

		userRepo.On("FindByUsername", ctx, "shopkeeper").Return(user, nil).Once()
		userRepo.On("FindByUsername", ctx, "nobody").Return(nil, shared.ErrNotFound).Once()

		_, badPass := service.Login(ctx, LoginInput{Username: "shopkeeper", Password: "wrong-password"})
		_, badUser := service.Login(ctx, LoginInput{Username: "nobody", Password: "whatever-pass"})

		require.Error(t, badPass)
		require.Error(t, badUser)
		assert.Equal(t, badPass.Error(), badUser.Error(), "credential errors must not leak which part failed")
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)
		user.IsActive = false

		userRepo.On("FindByUsername", ctx, "shopkeeper").Return(user, nil).Once()

		_, err := service.Login(ctx, LoginInput{Username: "shopkeeper", Password: "correct-horse"})

		assert.Error(t, err)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the pair and revokes the used refresh token", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)

		userRepo.On("FindByUsername", ctx, "shopkeeper").Return(user, nil).Once()
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := service.Login(ctx, LoginInput{Username: "shopkeeper", Password: "correct-horse"})
		require.NoError(t, err)

		refreshed, err := service.Refresh(ctx, RefreshInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		_, err = service.Refresh(ctx, RefreshInput{RefreshToken: login.RefreshToken})
		assert.Error(t, err, "a refresh token is single-use")
	})

	t.Run("access tokens are not accepted as refresh tokens", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)

		userRepo.On("FindByUsername", ctx, "shopkeeper").Return(user, nil).Once()

		login, err := service.Login(ctx, LoginInput{Username: "shopkeeper", Password: "correct-horse"})
		require.NoError(t, err)

		_, err = service.Refresh(ctx, RefreshInput{RefreshToken: login.AccessToken})
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked token stays revoked", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)

		userRepo.On("FindByUsername", ctx, "shopkeeper").Return(user, nil).Once()

		login, err := service.Login(ctx, LoginInput{Username: "shopkeeper", Password: "correct-horse"})
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, login.AccessToken))
	})

	t.Run("garbage token is a silent no-op", func(t *testing.T) {
		_, service := newAuthFixture(t)
		assert.NoError(t, service.Logout(ctx, "not-a-token"))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the hash when the current password matches", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()
		userRepo.On("Save", ctx, user).Return(nil).Once()

		err := service.ChangePassword(ctx, user.ID, ChangePasswordInput{
			CurrentPassword: "correct-horse",
			NewPassword:     "battery-staple",
		})

		require.NoError(t, err)
		assert.True(t, user.CheckPassword("battery-staple"))
		assert.False(t, user.CheckPassword("correct-horse"))
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		userRepo, service := newAuthFixture(t)
		user := newActiveUser(t)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()

		err := service.ChangePassword(ctx, user.ID, ChangePasswordInput{
			CurrentPassword: "wrong",
			NewPassword:     "battery-staple",
		})

		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "Save")
	})
}
