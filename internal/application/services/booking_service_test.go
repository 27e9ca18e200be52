package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gearshare/backend/internal/application/services"
	"github.com/gearshare/backend/internal/domain/entities"
	apperrors "github.com/gearshare/backend/pkg/errors"
)

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	booker := &entities.User{ID: 2, Name: "Renter", Email: "renter@example.com"}
	item := &entities.Item{ID: 5, Name: "Drill", Available: true, OwnerID: 1}

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	t.Run("creates a waiting booking", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(2)).Return(booker, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)
		bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *entities.Booking) bool {
			return b.Status == entities.BookingStatusWaiting && b.ItemID == 5 && b.BookerID == 2
		})).Return(nil)

		booking, err := service.Create(ctx, 5, start, end, 2)

		assert.NoError(t, err)
		assert.Equal(t, entities.BookingStatusWaiting, booking.Status)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("unknown booker", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.NewNotFoundError("user not found"))

		_, err := service.Create(ctx, 5, start, end, 99)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		itemRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(2)).Return(booker, nil)
		itemRepo.On("GetByID", ctx, int64(77)).Return(nil, apperrors.NewNotFoundError("item not found"))

		_, err := service.Create(ctx, 77, start, end, 2)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("unavailable item", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		unavailable := &entities.Item{ID: 5, Name: "Drill", Available: false, OwnerID: 1}
		userRepo.On("GetByID", ctx, int64(2)).Return(booker, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(unavailable, nil)

		_, err := service.Create(ctx, 5, start, end, 2)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		owner := &entities.User{ID: 1, Name: "Owner", Email: "owner@example.com"}
		userRepo.On("GetByID", ctx, int64(1)).Return(owner, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		_, err := service.Create(ctx, 5, start, end, 1)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("end not after start", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(2)).Return(booker, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		_, err := service.Create(ctx, 5, start, start, 2)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("start in the past", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(2)).Return(booker, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		past := time.Now().Add(-time.Hour)
		_, err := service.Create(ctx, 5, past, past.Add(2*time.Hour), 2)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBookingService_Approve(t *testing.T) {
	ctx := context.Background()

	item := &entities.Item{ID: 5, Name: "Drill", Available: true, OwnerID: 1}
	waiting := func() *entities.Booking {
		return &entities.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: entities.BookingStatusWaiting}
	}

	t.Run("owner approves", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		bookingRepo.On("GetByID", ctx, int64(10)).Return(waiting(), nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)
		bookingRepo.On("UpdateStatus", ctx, int64(10), entities.BookingStatusApproved).Return(nil)

		booking, err := service.Approve(ctx, 10, true, 1)

		assert.NoError(t, err)
		assert.Equal(t, entities.BookingStatusApproved, booking.Status)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("owner rejects", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		bookingRepo.On("GetByID", ctx, int64(10)).Return(waiting(), nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)
		bookingRepo.On("UpdateStatus", ctx, int64(10), entities.BookingStatusRejected).Return(nil)

		booking, err := service.Approve(ctx, 10, false, 1)

		assert.NoError(t, err)
		assert.Equal(t, entities.BookingStatusRejected, booking.Status)
	})

	t.Run("already decided", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		approved := &entities.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: entities.BookingStatusApproved}
		bookingRepo.On("GetByID", ctx, int64(10)).Return(approved, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		_, err := service.Approve(ctx, 10, true, 1)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-owner cannot decide", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		bookingRepo.On("GetByID", ctx, int64(10)).Return(waiting(), nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		_, err := service.Approve(ctx, 10, true, 2)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingService_GetByID(t *testing.T) {
	ctx := context.Background()

	item := &entities.Item{ID: 5, OwnerID: 1}
	booking := &entities.Booking{ID: 10, ItemID: 5, BookerID: 2, Status: entities.BookingStatusWaiting}

	t.Run("booker can view", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		bookingRepo.On("GetByID", ctx, int64(10)).Return(booking, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		result, err := service.GetByID(ctx, 10, 2)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), result.ID)
	})

	t.Run("owner can view", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		bookingRepo.On("GetByID", ctx, int64(10)).Return(booking, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		_, err := service.GetByID(ctx, 10, 1)

		assert.NoError(t, err)
	})

	t.Run("stranger cannot view", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		bookingRepo.On("GetByID", ctx, int64(10)).Return(booking, nil)
		itemRepo.On("GetByID", ctx, int64(5)).Return(item, nil)

		_, err := service.GetByID(ctx, 10, 3)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestBookingService_ListByBooker(t *testing.T) {
	ctx := context.Background()

	booker := &entities.User{ID: 2, Name: "Renter", Email: "renter@example.com"}

	t.Run("defaults to all", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(2)).Return(booker, nil)
		bookingRepo.On("ListByBooker", ctx, int64(2), entities.BookingStateAll).
			Return([]*entities.Booking{}, nil)

		_, err := service.ListByBooker(ctx, "", 2)

		assert.NoError(t, err)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("lowercase state accepted", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(2)).Return(booker, nil)
		bookingRepo.On("ListByBooker", ctx, int64(2), entities.BookingStateFuture).
			Return([]*entities.Booking{}, nil)

		_, err := service.ListByBooker(ctx, "future", 2)

		assert.NoError(t, err)
	})

	t.Run("unknown state", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		_, err := service.ListByBooker(ctx, "SOMEDAY", 2)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown booker", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		userRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.NewNotFoundError("user not found"))

		_, err := service.ListByBooker(ctx, "ALL", 99)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestBookingService_ListByOwner(t *testing.T) {
	ctx := context.Background()

	owner := &entities.User{ID: 1, Name: "Owner", Email: "owner@example.com"}

	t.Run("filters by state", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		expected := []*entities.Booking{{ID: 10, ItemID: 5, BookerID: 2, Status: entities.BookingStatusWaiting}}
		userRepo.On("GetByID", ctx, int64(1)).Return(owner, nil)
		bookingRepo.On("ListByOwner", ctx, int64(1), entities.BookingStateWaiting).Return(expected, nil)

		bookings, err := service.ListByOwner(ctx, 1, "WAITING")

		assert.NoError(t, err)
		assert.Len(t, bookings, 1)
	})

	t.Run("unknown state", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		service := services.NewBookingService(bookingRepo, userRepo, itemRepo)

		_, err := service.ListByOwner(ctx, 1, "NOPE")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
