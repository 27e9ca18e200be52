package repositories

import (
	"context"

	"github.com/gearshare/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create persists a new user and assigns its id
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByEmail retrieves a user by email; NotFound when no user has it
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// List retrieves the full user directory
	List(ctx context.Context) ([]*entities.User, error)

	// Update overwrites a user's mutable fields
	Update(ctx context.Context, user *entities.User) error

	// Delete removes a user by id
	Delete(ctx context.Context, id int64) error
}
