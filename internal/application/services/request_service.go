package services

import (
	"context"
	"time"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/observability"
)

const defaultRequestPageSize = 10

// RequestService handles the item request board
type RequestService struct {
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
	itemRepo    repositories.ItemRepository
}

// NewRequestService creates a new item request service
func NewRequestService(
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
	itemRepo repositories.ItemRepository,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
	}
}

// Create posts a new item request
func (s *RequestService) Create(ctx context.Context, description string, requestorID int64) (*entities.ItemRequest, error) {
	requestor, err := s.userRepo.GetByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	request := &entities.ItemRequest{
		Description: description,
		RequestorID: requestor.ID,
		Created:     time.Now(),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("request_id", request.ID).
		Int64("requestor_id", requestor.ID).
		Msg("item request created")

	return request, nil
}

// ListByRequestor retrieves the user's own requests, newest first
func (s *RequestService) ListByRequestor(ctx context.Context, requestorID int64) ([]*entities.ItemRequestView, error) {
	if _, err := s.userRepo.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	return s.assembleViews(ctx, requests)
}

// ListOthers retrieves other users' requests, newest first, page-windowed
func (s *RequestService) ListOthers(ctx context.Context, excludingUserID int64, offset, limit int) ([]*entities.ItemRequestView, error) {
	if _, err := s.userRepo.GetByID(ctx, excludingUserID); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultRequestPageSize
	}

	requests, err := s.requestRepo.ListExcluding(ctx, excludingUserID, offset, limit)
	if err != nil {
		return nil, err
	}

	return s.assembleViews(ctx, requests)
}

// GetByID retrieves a request with the items listed against it
func (s *RequestService) GetByID(ctx context.Context, requestID, viewerID int64) (*entities.ItemRequestView, error) {
	if _, err := s.userRepo.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	return entities.NewItemRequestView(request, items), nil
}

func (s *RequestService) assembleViews(ctx context.Context, requests []*entities.ItemRequest) ([]*entities.ItemRequestView, error) {
	views := []*entities.ItemRequestView{}
	for _, request := range requests {
		items, err := s.itemRepo.ListByRequest(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, entities.NewItemRequestView(request, items))
	}
	return views, nil
}
