package services

import (
	"context"
	"time"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/observability"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

// BookingService handles the booking lifecycle:
// WAITING -> APPROVED or WAITING -> REJECTED, decided by the item owner.
type BookingService struct {
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
	itemRepo    repositories.ItemRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	userRepo repositories.UserRepository,
	itemRepo repositories.ItemRepository,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
	}
}

// Create places a booking request in WAITING state
func (s *BookingService) Create(ctx context.Context, itemID int64, start, end time.Time, bookerID int64) (*entities.Booking, error) {
	booker, err := s.userRepo.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !item.Available {
		return nil, apperrors.NewValidationError("item is not available")
	}
	if booker.ID == item.OwnerID {
		return nil, apperrors.NewValidationError("cannot book your own item")
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end must be after start")
	}
	if start.Before(time.Now()) {
		return nil, apperrors.NewValidationError("start must not be in the past")
	}

	booking := &entities.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   entities.BookingStatusWaiting,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).
		Msg("booking created")

	return booking, nil
}

// Approve decides a WAITING booking. Only the item owner may decide, and
// no booking leaves APPROVED, REJECTED or CANCELED again.
func (s *BookingService) Approve(ctx context.Context, bookingID int64, approve bool, actingUserID int64) (*entities.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entities.BookingStatusWaiting {
		return nil, apperrors.NewValidationError("booking is already decided")
	}
	if item.OwnerID != actingUserID {
		return nil, apperrors.NewValidationError("only the item owner can decide a booking")
	}

	status := entities.BookingStatusRejected
	if approve {
		status = entities.BookingStatusApproved
	}
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	observability.LoggerFromContext(ctx).Info().
		Int64("booking_id", booking.ID).
		Str("status", string(status)).
		Msg("booking decided")

	return booking, nil
}

// GetByID retrieves a booking for its booker or the item's owner
func (s *BookingService) GetByID(ctx context.Context, bookingID, actingUserID int64) (*entities.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID != actingUserID && item.OwnerID != actingUserID {
		return nil, apperrors.NewValidationError("only the booker or the item owner can view a booking")
	}

	return booking, nil
}

// ListByBooker retrieves the booker's bookings filtered by state
func (s *BookingService) ListByBooker(ctx context.Context, state string, bookerID int64) ([]*entities.Booking, error) {
	bookingState, err := entities.ParseBookingState(state)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if _, err := s.userRepo.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByBooker(ctx, bookerID, bookingState)
}

// ListByOwner retrieves bookings on the owner's items filtered by state
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state string) ([]*entities.Booking, error) {
	bookingState, err := entities.ParseBookingState(state)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByOwner(ctx, ownerID, bookingState)
}
