package repositories

import (
	"context"
	"time"

	"github.com/gearshare/backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations.
// The state-filtered listings evaluate CURRENT/PAST/FUTURE against the
// database clock at query time and order by start descending.
type BookingRepository interface {
	// Create persists a new booking and assigns its id
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by id
	GetByID(ctx context.Context, id int64) (*entities.Booking, error)

	// UpdateStatus overwrites a booking's status
	UpdateStatus(ctx context.Context, id int64, status entities.BookingStatus) error

	// ListByBooker retrieves a booker's bookings filtered by state
	ListByBooker(ctx context.Context, bookerID int64, state entities.BookingState) ([]*entities.Booking, error)

	// ListByOwner retrieves bookings on a user's items filtered by state
	ListByOwner(ctx context.Context, ownerID int64, state entities.BookingState) ([]*entities.Booking, error)

	// LastForItem retrieves the most recent approved booking of the item
	// with start <= at, ordered by end descending; nil when none exists
	LastForItem(ctx context.Context, itemID int64, at time.Time) (*entities.Booking, error)

	// NextForItem retrieves the earliest approved booking of the item
	// with start > at, ordered by end ascending; nil when none exists
	NextForItem(ctx context.Context, itemID int64, at time.Time) (*entities.Booking, error)

	// ExistsFinishedByBooker reports whether the booker has a booking on
	// the item that ended strictly before the given instant
	ExistsFinishedByBooker(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error)
}
