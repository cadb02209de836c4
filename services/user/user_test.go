package user_test

import (
	"context"
	"errors"
	"testing"

	"carrental/database"
	"carrental/mocks"
	"carrental/models"
	"carrental/services/user"
	"carrental/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to renter and returns a token", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := user.NewDefaultUserService(repo, false, nil)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(nil, database.ErrNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleRenter &&
				u.Email == "ana@example.com" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cretpass")) == nil
		})).Return(nil)

		out, err := svc.Register(ctx, models.UserRegistration{Name: "Ana", Email: " Ana@Example.com ", Password: "s3cretpass"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleRenter, out.Role)
		assert.NotEmpty(t, out.ID)

		claims, err := utils.ExtractClaims(out.Token)
		require.NoError(t, err)
		assert.Equal(t, out.ID, claims.Subject)
		assert.Equal(t, "renter", claims.Role)
		repo.AssertExpectations(t)
	})

	t.Run("driver may self-register", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := user.NewDefaultUserService(repo, false, nil)
		repo.On("GetByEmail", ctx, "dan@example.com").Return(nil, database.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		out, err := svc.Register(ctx, models.UserRegistration{Name: "Dan", Email: "dan@example.com", Password: "s3cretpass", Role: models.RoleDriver})
		require.NoError(t, err)
		assert.Equal(t, models.RoleDriver, out.Role)
	})

	t.Run("manager signup is gated", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := user.NewDefaultUserService(repo, false, nil)

		_, err := svc.Register(ctx, models.UserRegistration{Name: "M", Email: "m@example.com", Password: "s3cretpass", Role: models.RoleManager})
		assert.ErrorIs(t, err, user.ErrManagerSignup)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("manager signup when allowed", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := user.NewDefaultUserService(repo, true, nil)
		repo.On("GetByEmail", ctx, "m@example.com").Return(nil, database.ErrNotFound)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		out, err := svc.Register(ctx, models.UserRegistration{Name: "M", Email: "m@example.com", Password: "s3cretpass", Role: models.RoleManager})
		require.NoError(t, err)
		assert.Equal(t, models.RoleManager, out.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := user.NewDefaultUserService(new(mocks.UserRepository), true, nil)
		_, err := svc.Register(ctx, models.UserRegistration{Name: "X", Email: "x@example.com", Password: "s3cretpass", Role: "admin"})
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := user.NewDefaultUserService(repo, false, nil)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(&models.User{ID: "u-1"}, nil)

		_, err := svc.Register(ctx, models.UserRegistration{Name: "Ana", Email: "ana@example.com", Password: "s3cretpass"})
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("lookup failure is not leaked", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		svc := user.NewDefaultUserService(repo, false, nil)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(nil, errors.New("socket closed"))

		_, err := svc.Register(ctx, models.UserRegistration{Name: "Ana", Email: "ana@example.com", Password: "s3cretpass"})
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "socket")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: "u-1", Email: "ana@example.com", Role: models.RoleDriver, PasswordHash: string(hash)}

	repo := new(mocks.UserRepository)
	repo.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil)
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, database.ErrNotFound)
	svc := user.NewDefaultUserService(repo, false, nil)

	out, err := svc.Login(ctx, "ANA@example.com", "s3cretpass")
	require.NoError(t, err)
	claims, err := utils.ExtractClaims(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "driver", claims.Role)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost@example.com", "s3cretpass")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	actor := models.Actor{ID: "u-1", Role: models.RoleRenter}

	repo := new(mocks.UserRepository)
	svc := user.NewDefaultUserService(repo, false, nil)

	repo.On("GetByID", ctx, "u-1").Return(&models.User{ID: "u-1", Name: "Ana"}, nil).Once()
	u, err := svc.GetMe(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	repo.On("GetByID", ctx, "u-1").Return(nil, database.ErrNotFound).Once()
	_, err = svc.GetMe(ctx, actor)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	assert.ErrorIs(t, svc.UpdateFCMToken(ctx, actor, "  "), user.ErrEmptyToken)

	repo.On("UpdateFCMToken", ctx, "u-1", "tok-123").Return(nil).Once()
	require.NoError(t, svc.UpdateFCMToken(ctx, actor, " tok-123 "))
	repo.AssertExpectations(t)
}
