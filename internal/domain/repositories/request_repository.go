package repositories

import (
	"context"

	"github.com/gearshare/backend/internal/domain/entities"
)

// RequestRepository defines the interface for item request data operations
type RequestRepository interface {
	// Create persists a new item request and assigns its id
	Create(ctx context.Context, request *entities.ItemRequest) error

	// GetByID retrieves an item request by id
	GetByID(ctx context.Context, id int64) (*entities.ItemRequest, error)

	// ListByRequestor retrieves a user's requests, newest first
	ListByRequestor(ctx context.Context, requestorID int64) ([]*entities.ItemRequest, error)

	// ListExcluding retrieves requests not created by the user, newest
	// first, windowed by offset and limit
	ListExcluding(ctx context.Context, userID int64, offset, limit int) ([]*entities.ItemRequest, error)
}
