package repositories

import (
	"context"

	"github.com/gearshare/backend/internal/domain/entities"
)

// CommentRepository defines the interface for comment data operations.
// Comments are append-only; no update or delete is exposed.
type CommentRepository interface {
	// Create persists a new comment and assigns its id
	Create(ctx context.Context, comment *entities.Comment) error

	// ListByItem retrieves an item's comments in insertion order
	ListByItem(ctx context.Context, itemID int64) ([]entities.Comment, error)
}
