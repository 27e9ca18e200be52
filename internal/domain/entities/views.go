package entities

import (
	"time"
)

// BookingRef is the short booking shape embedded in item views
type BookingRef struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	BookerID int64     `json:"booker_id"`
}

// ItemRef is the short item shape embedded in request views
type ItemRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// ItemView is the composite read view of an item.
// LastBooking and NextBooking are populated only for the item's owner.
type ItemView struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Available   bool        `json:"available"`
	Owner       User        `json:"owner"`
	RequestID   *int64      `json:"request_id,omitempty"`
	LastBooking *BookingRef `json:"last_booking,omitempty"`
	NextBooking *BookingRef `json:"next_booking,omitempty"`
	Comments    []Comment   `json:"comments"`
}

// ItemRequestView is the composite read view of an item request
type ItemRequestView struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	Created     time.Time `json:"created"`
	Items       []ItemRef `json:"items"`
}

// NewItemView assembles an item view from loaded entities.
// Pure; no lookups happen here.
func NewItemView(item *Item, owner *User, last, next *Booking, comments []Comment) *ItemView {
	view := &ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		Owner:       *owner,
		RequestID:   item.RequestID,
		Comments:    comments,
	}
	if view.Comments == nil {
		view.Comments = []Comment{}
	}
	view.LastBooking = NewBookingRef(last)
	view.NextBooking = NewBookingRef(next)
	return view
}

// NewBookingRef maps a booking to its short shape; nil stays nil
func NewBookingRef(b *Booking) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{ID: b.ID, Start: b.Start, End: b.End, BookerID: b.BookerID}
}

// NewItemRef maps an item to its short shape
func NewItemRef(item *Item) ItemRef {
	return ItemRef{ID: item.ID, Name: item.Name, OwnerID: item.OwnerID}
}

// NewItemRequestView assembles a request view from loaded entities
func NewItemRequestView(request *ItemRequest, items []*Item) *ItemRequestView {
	refs := make([]ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, NewItemRef(item))
	}
	return &ItemRequestView{
		ID:          request.ID,
		Description: request.Description,
		RequestorID: request.RequestorID,
		Created:     request.Created,
		Items:       refs,
	}
}
