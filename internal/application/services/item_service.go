package services

import (
	"context"
	"strings"
	"time"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/observability"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

// ItemService handles the item catalog and its comment ledger
type ItemService struct {
	itemRepo    repositories.ItemRepository
	userRepo    repositories.UserRepository
	bookingRepo repositories.BookingRepository
	commentRepo repositories.CommentRepository
	requestRepo repositories.RequestRepository
}

// NewItemService creates a new item service
func NewItemService(
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	bookingRepo repositories.BookingRepository,
	commentRepo repositories.CommentRepository,
	requestRepo repositories.RequestRepository,
) *ItemService {
	return &ItemService{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		requestRepo: requestRepo,
	}
}

// Create lists a new item for the owner, optionally fulfilling a request
func (s *ItemService) Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*entities.Item, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if requestID != nil {
		if _, err := s.requestRepo.GetByID(ctx, *requestID); err != nil {
			return nil, err
		}
	}

	item := &entities.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("item_id", item.ID).
		Int64("owner_id", ownerID).
		Msg("item created")

	return item, nil
}

// Update applies a partial mutation; only the owner may mutate an item
func (s *ItemService) Update(ctx context.Context, itemID int64, update entities.ItemUpdate, actingUserID int64) (*entities.Item, error) {
	if _, err := s.userRepo.GetByID(ctx, actingUserID); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actingUserID {
		return nil, apperrors.NewUnauthorizedError("only the owner can update an item")
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Available != nil {
		item.Available = *update.Available
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// GetByID assembles the item view for a viewer. Last and next approved
// bookings are included only when the viewer owns the item.
func (s *ItemService) GetByID(ctx context.Context, itemID, viewerID int64) (*entities.ItemView, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.assembleView(ctx, item, viewerID)
}

// ListByOwner assembles views for every item the owner has listed
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.ItemView, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := []*entities.ItemView{}
	for _, item := range items {
		view, err := s.assembleView(ctx, item, ownerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Search finds available items matching text in name or description.
// Blank text yields an empty result without touching storage.
func (s *ItemService) Search(ctx context.Context, text string) ([]*entities.ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*entities.ItemView{}, nil
	}

	items, err := s.itemRepo.Search(ctx, text)
	if err != nil {
		return nil, err
	}

	views := []*entities.ItemView{}
	for _, item := range items {
		// Searchers never see booking data; pass a viewer id that
		// cannot match an owner.
		view, err := s.assembleView(ctx, item, 0)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// AddComment records a post-use comment. The author must have a booking
// on the item that ended before now.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*entities.Comment, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("comment text must not be blank")
	}

	now := time.Now()
	used, err := s.bookingRepo.ExistsFinishedByBooker(ctx, author.ID, item.ID, now)
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, apperrors.NewValidationError("user has not finished a booking of this item")
	}

	comment := &entities.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *ItemService) assembleView(ctx context.Context, item *entities.Item, viewerID int64) (*entities.ItemView, error) {
	owner, err := s.userRepo.GetByID(ctx, item.OwnerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	var last, next *entities.Booking
	if item.OwnerID == viewerID {
		now := time.Now()
		last, err = s.bookingRepo.LastForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		next, err = s.bookingRepo.NextForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
	}

	return entities.NewItemView(item, owner, last, next, comments), nil
}
