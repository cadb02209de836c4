package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrental/database"
	"carrental/models"
	"carrental/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account and signs the caller in.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, utils.NewAppError(utils.CodeInvalidInput, "name, email and password are required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleRenter
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role == models.RoleManager && !s.AllowManagerSignup {
		return nil, ErrManagerSignup
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		s.Logger.Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Role:         role,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: string(hashedPassword),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		s.Logger.Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), TokenTTL)
	if err != nil {
		s.Logger.Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	s.Logger.Info("User registered", zap.String("userId", u.ID), zap.String("role", string(u.Role)))
	return authResponse(u, token), nil
}

// Login verifies the password and issues a token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.Logger.Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	return authResponse(u, token), nil
}
