package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/observability"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

// UserService handles the user directory
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create registers a new user; the email must not be in use
func (s *UserService) Create(ctx context.Context, name, email string) (*entities.User, error) {
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	user := &entities.User{Name: name, Email: email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("user_id", user.ID).
		Msg("user created")

	return user, nil
}

// Update applies a partial mutation; blank fields are ignored
func (s *UserService) Update(ctx context.Context, id int64, name, email string) (*entities.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(email) != "" {
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if strings.TrimSpace(name) != "" {
		user.Name = name
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by id
func (s *UserService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves the full user directory
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.repo.List(ctx)
}

// Delete removes a user by id. References from bookings, comments and
// requests are left in place; nothing cascades.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("user_id", id).
		Msg("user deleted")

	return nil
}

// ensureEmailFree fails with Conflict when the email belongs to a user
// other than selfID. Ids are compared by value.
func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflictError(fmt.Sprintf("email %s is already in use", email))
	}
	return nil
}
