package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gearshare/backend/internal/domain/entities"
)

func TestNewItemView(t *testing.T) {
	owner := &entities.User{ID: 1, Name: "Owner", Email: "owner@example.com"}
	item := &entities.Item{ID: 5, Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: 1}

	t.Run("nil comments become empty list", func(t *testing.T) {
		view := entities.NewItemView(item, owner, nil, nil, nil)

		assert.NotNil(t, view.Comments)
		assert.Empty(t, view.Comments)
		assert.Nil(t, view.LastBooking)
		assert.Nil(t, view.NextBooking)
	})

	t.Run("bookings map to refs", func(t *testing.T) {
		start := time.Now()
		last := &entities.Booking{ID: 8, Start: start, End: start.Add(time.Hour), ItemID: 5, BookerID: 2}

		view := entities.NewItemView(item, owner, last, nil, nil)

		assert.NotNil(t, view.LastBooking)
		assert.Equal(t, int64(8), view.LastBooking.ID)
		assert.Equal(t, int64(2), view.LastBooking.BookerID)
	})
}

func TestNewItemRequestView(t *testing.T) {
	request := &entities.ItemRequest{ID: 4, Description: "Need a ladder", RequestorID: 2, Created: time.Now()}

	t.Run("no items yields empty slice", func(t *testing.T) {
		view := entities.NewItemRequestView(request, nil)

		assert.NotNil(t, view.Items)
		assert.Empty(t, view.Items)
	})

	t.Run("items map to refs", func(t *testing.T) {
		items := []*entities.Item{{ID: 5, Name: "Ladder", OwnerID: 1}}

		view := entities.NewItemRequestView(request, items)

		assert.Len(t, view.Items, 1)
		assert.Equal(t, entities.ItemRef{ID: 5, Name: "Ladder", OwnerID: 1}, view.Items[0])
	})
}
