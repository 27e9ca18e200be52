package entities

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
	// BookingStatusCanceled is declared for completeness; no exposed
	// operation currently transitions a booking into it.
	BookingStatusCanceled BookingStatus = "CANCELED"
)

// Booking represents a time-bounded booking of an item
type Booking struct {
	ID       int64         `json:"id" db:"id"`
	Start    time.Time     `json:"start" db:"start_date"`
	End      time.Time     `json:"end" db:"end_date"`
	ItemID   int64         `json:"item_id" db:"item_id"`
	BookerID int64         `json:"booker_id" db:"booker_id"`
	Status   BookingStatus `json:"status" db:"status"`
}

// BookingState selects a time-relative or status view over bookings
type BookingState string

const (
	BookingStateAll      BookingState = "ALL"
	BookingStateCurrent  BookingState = "CURRENT"
	BookingStatePast     BookingState = "PAST"
	BookingStateFuture   BookingState = "FUTURE"
	BookingStateWaiting  BookingState = "WAITING"
	BookingStateRejected BookingState = "REJECTED"
)

// ParseBookingState parses a state string from the request surface.
// An empty string defaults to ALL; anything unknown is an error.
func ParseBookingState(s string) (BookingState, error) {
	if s == "" {
		return BookingStateAll, nil
	}
	switch BookingState(strings.ToUpper(s)) {
	case BookingStateAll:
		return BookingStateAll, nil
	case BookingStateCurrent:
		return BookingStateCurrent, nil
	case BookingStatePast:
		return BookingStatePast, nil
	case BookingStateFuture:
		return BookingStateFuture, nil
	case BookingStateWaiting:
		return BookingStateWaiting, nil
	case BookingStateRejected:
		return BookingStateRejected, nil
	default:
		return "", fmt.Errorf("unknown state: %s", s)
	}
}
