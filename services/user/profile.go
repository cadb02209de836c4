package user

import (
	"context"
	"errors"
	"strings"

	"carrental/database"
	"carrental/models"
)

func (s *DefaultUserService) GetMe(ctx context.Context, actor models.Actor) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateFCMToken stores the device push token used by the push channel.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, actor models.Actor, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.Repo.UpdateFCMToken(ctx, actor.ID, token); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
