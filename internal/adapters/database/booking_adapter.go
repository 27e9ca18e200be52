package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/gearshare/backend/internal/domain/entities"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

var bookingColumns = []interface{}{
	goqu.I("b.id"), goqu.I("b.start_date"), goqu.I("b.end_date"),
	goqu.I("b.item_id"), goqu.I("b.booker_id"), goqu.I("b.status"),
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new booking and assigns its id
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	query, args, err := a.db.Insert("bookings").
		Rows(goqu.Record{
			"start_date": booking.Start,
			"end_date":   booking.End,
			"item_id":    booking.ItemID,
			"booker_id":  booking.BookerID,
			"status":     booking.Status,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by id
func (a *BookingAdapter) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	query, args, err := a.bookingsQuery().
		Where(goqu.I("b.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

// UpdateStatus overwrites a booking's status
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id int64, status entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}

	return nil
}

// ListByBooker retrieves a booker's bookings filtered by state
func (a *BookingAdapter) ListByBooker(ctx context.Context, bookerID int64, state entities.BookingState) ([]*entities.Booking, error) {
	ds := a.bookingsQuery().Where(goqu.I("b.booker_id").Eq(bookerID))
	return a.listByState(ctx, ds, state)
}

// ListByOwner retrieves bookings on a user's items filtered by state
func (a *BookingAdapter) ListByOwner(ctx context.Context, ownerID int64, state entities.BookingState) ([]*entities.Booking, error) {
	ds := a.bookingsQuery().
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("b.item_id").Eq(goqu.I("i.id")))).
		Where(goqu.I("i.owner_id").Eq(ownerID))
	return a.listByState(ctx, ds, state)
}

// listByState applies the state filter and the shared start-descending order.
// REJECTED deliberately orders by start as well, keeping both query paths
// consistent.
func (a *BookingAdapter) listByState(ctx context.Context, ds *goqu.SelectDataset, state entities.BookingState) ([]*entities.Booking, error) {
	now := goqu.L("now()")

	switch state {
	case entities.BookingStateAll:
		// no extra filter
	case entities.BookingStateCurrent:
		ds = ds.Where(
			goqu.I("b.start_date").Lte(now),
			goqu.I("b.end_date").Gte(now),
		)
	case entities.BookingStatePast:
		ds = ds.Where(goqu.I("b.end_date").Lt(now))
	case entities.BookingStateFuture:
		ds = ds.Where(goqu.I("b.start_date").Gt(now))
	case entities.BookingStateWaiting:
		ds = ds.Where(goqu.I("b.status").Eq(entities.BookingStatusWaiting))
	case entities.BookingStateRejected:
		ds = ds.Where(goqu.I("b.status").Eq(entities.BookingStatusRejected))
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown state: %s", state))
	}

	query, args, err := ds.Order(goqu.I("b.start_date").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryBookings(ctx, query, args)
}

// LastForItem retrieves the most recent approved booking starting at or before at
func (a *BookingAdapter) LastForItem(ctx context.Context, itemID int64, at time.Time) (*entities.Booking, error) {
	return a.firstBooking(ctx,
		[]exp.Expression{
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(entities.BookingStatusApproved),
			goqu.I("b.start_date").Lte(at),
		},
		goqu.I("b.end_date").Desc(),
	)
}

// NextForItem retrieves the earliest approved booking starting after at
func (a *BookingAdapter) NextForItem(ctx context.Context, itemID int64, at time.Time) (*entities.Booking, error) {
	return a.firstBooking(ctx,
		[]exp.Expression{
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.status").Eq(entities.BookingStatusApproved),
			goqu.I("b.start_date").Gt(at),
		},
		goqu.I("b.end_date").Asc(),
	)
}

// ExistsFinishedByBooker reports whether the booker has a booking on the
// item that ended strictly before the given instant
func (a *BookingAdapter) ExistsFinishedByBooker(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From(goqu.T("bookings").As("b")).
		Where(
			goqu.I("b.booker_id").Eq(bookerID),
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.end_date").Lt(before),
		).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check finished bookings", err)
	}

	return count > 0, nil
}

func (a *BookingAdapter) bookingsQuery() *goqu.SelectDataset {
	return a.db.Select(bookingColumns...).From(goqu.T("bookings").As("b"))
}

func (a *BookingAdapter) firstBooking(ctx context.Context, where []exp.Expression, order exp.OrderedExpression) (*entities.Booking, error) {
	query, args, err := a.bookingsQuery().
		Where(where...).
		Order(order).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

func (a *BookingAdapter) queryBookings(ctx context.Context, query string, args []interface{}) ([]*entities.Booking, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query bookings", err)
	}
	defer rows.Close()

	bookings := []*entities.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.ItemID,
		&booking.BookerID,
		&booking.Status,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}
