package service

import (
	"context"
	"fmt"
	"strings"

	"itemshare-api/internal/apperr"
	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"

	"go.uber.org/zap"
)

// UserService manages accounts. Identity arrives pre-authenticated from
// the gateway, so there are no credentials here, only profile data.
type UserService struct {
	users  repository.Users
	logger *zap.Logger
}

func NewUserService(store *repository.Store, logger *zap.Logger) *UserService {
	return &UserService{users: store.Users, logger: logger}
}

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserInput carries a partial profile edit.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.InvalidInputf("user name must not be blank")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	user := &model.User{Name: in.Name, Email: in.Email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*model.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.InvalidInputf("user name must not be blank")
		}
		user.Name = *in.Name
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.getUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// Delete removes the account and its owned items. Bookings and comments
// the user left on other people's items survive as history.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if strings.TrimSpace(email) == "" || at < 1 || at == len(email)-1 {
		return apperr.InvalidInputf("invalid email %q", email)
	}
	return nil
}

func (s *UserService) getUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFoundf("user %d", id)
	}
	return user, nil
}
