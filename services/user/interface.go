package user

import (
	"context"
	"time"

	userRepo "carrental/database/repository/user"
	"carrental/models"
	"carrental/utils"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = utils.NewAppError(utils.CodeNotFound, "user not found")
	ErrEmailTaken         = utils.NewAppError(utils.CodeConflict, "a user with this email already exists")
	ErrInvalidCredentials = utils.NewAppError(utils.CodeUnauthorized, "invalid email or password")
	ErrInvalidRole        = utils.NewAppError(utils.CodeInvalidInput, "role must be renter, driver or manager")
	ErrManagerSignup      = utils.NewAppError(utils.CodeForbidden, "manager accounts cannot be self-registered")
	ErrEmptyToken         = utils.NewAppError(utils.CodeInvalidInput, "fcmToken is required")
)

// TokenTTL is how long an access token stays valid.
const TokenTTL = 72 * time.Hour

type UserService interface {
	Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetMe(ctx context.Context, actor models.Actor) (*models.User, error)
	UpdateFCMToken(ctx context.Context, actor models.Actor, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo               userRepo.UserRepository
	AllowManagerSignup bool
	Logger             *zap.Logger
}

func NewDefaultUserService(repo userRepo.UserRepository, allowManagerSignup bool, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{Repo: repo, AllowManagerSignup: allowManagerSignup, Logger: logger}
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID          string      `json:"id"`
	Token       string      `json:"token"`
	Name        string      `json:"name,omitempty"`
	Email       string      `json:"email,omitempty"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Role        models.Role `json:"role"`
}

func authResponse(u *models.User, token string) *AuthResponse {
	return &AuthResponse{
		ID:          u.ID,
		Token:       token,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
}
