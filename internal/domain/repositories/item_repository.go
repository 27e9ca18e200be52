package repositories

import (
	"context"

	"github.com/gearshare/backend/internal/domain/entities"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	// Create persists a new item and assigns its id
	Create(ctx context.Context, item *entities.Item) error

	// GetByID retrieves an item by id
	GetByID(ctx context.Context, id int64) (*entities.Item, error)

	// Update overwrites an item's mutable fields
	Update(ctx context.Context, item *entities.Item) error

	// ListByOwner retrieves all items owned by a user
	ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Item, error)

	// Search retrieves available items whose name or description contains
	// text, case-insensitively
	Search(ctx context.Context, text string) ([]*entities.Item, error)

	// ListByRequest retrieves all items fulfilling an item request
	ListByRequest(ctx context.Context, requestID int64) ([]*entities.Item, error)
}
